package domain

// Upload is a file handed to the document store for ingestion.
type Upload struct {
	// Name is the original file name.
	Name string

	// Type is the MIME type of the file.
	Type string

	// Data holds the raw bytes read from the file.
	Data []byte
}

// UploadResult reports the outcome of ingesting one file.
type UploadResult struct {
	// Name is the file name the result refers to.
	Name string

	// Document is the stored record, nil on failure.
	Document *Document

	// Err is set when the upload was rejected or could not be read.
	Err error
}
