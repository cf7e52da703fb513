package models

// SampleURI binds /market/sample/:id
type SampleURI struct {
	ID string `uri:"id" binding:"required,alphanum,max=32"`
}

// Sample is a downloadable resource sample
type Sample struct {
	Filename    string
	ContentType string
	Content     []byte
}
