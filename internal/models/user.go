package models

// User is a registered user document. Callers supply arbitrary fields;
// the document is stored verbatim and never read back by this service.
type User map[string]interface{}
