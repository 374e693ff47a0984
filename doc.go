// Package xmldoc owns the XML document lifecycle for formats that must
// stay byte-compatible with canonicalization and digital signatures:
// loading with declared-encoding normalization, structured building via
// the codec, canonical-form retrieval re-expressed in the working
// single-byte encoding (ISO-8859-1 by default), dot-path structured
// access, and XPath querying.
//
//	doc, err := xmldoc.Load(raw)
//	id := doc.Get("Invoice.Header.ID")
//	canon, err := doc.C14N()
//
// A Document is append-then-freeze: once projected or queried, later
// tree mutation is not reflected in Get or Query results.
package xmldoc
