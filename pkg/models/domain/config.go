package domain

import "fmt"

type ProfileType string

const (
	ProfileTypeFile ProfileType = "file"
	ProfileTypeS3   ProfileType = "s3"
)

// SourceProfile describes where raw records of a named data source live.
type SourceProfile struct {
	Name   string
	Type   ProfileType
	Path   string // file: fixtures directory
	Bucket string // s3
	Prefix string // s3
	Region string // s3
}

func (c SourceProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Type, c.Name)
}
