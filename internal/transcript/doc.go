// Package transcript turns raw course transcript files into domain
// courses and retrieval chunks. It owns the two ingestion-time
// transformations: parsing the transcript header/lesson structure and
// splitting lesson text into overlapping, provenance-tagged chunks.
package transcript
