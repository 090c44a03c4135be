// Package services implements the core application logic behind the
// driving ports: the query-answering loop and transcript ingestion.
// Services depend on driven ports only; adapters are wired in by the
// composition root.
package services
