package model

import "time"

// CommitRecord is the metadata of one commit as read from the repository.
// Empty RepositoryURL, Branch or WorkDir mean the value is absent.
type CommitRecord struct {
	Timestamp     time.Time `json:"timestamp"`
	Message       string    `json:"message"`
	RepositoryURL string    `json:"repository_url"`
	Branch        string    `json:"branch"`
	Hash          string    `json:"hash"`
	WorkDir       string    `json:"work_dir"`
}

// Row is one parsed diary table line.
type Row struct {
	Folder        string `json:"folder"`
	Time          string `json:"time"`
	Message       string `json:"message"`
	RepositoryURL string `json:"repository_url"`
	Branch        string `json:"branch"`
	Hash          string `json:"hash"`
}
