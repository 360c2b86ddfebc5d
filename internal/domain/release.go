package domain

import "time"

type ReleaseType string

const (
	ReleaseTypeRelease  ReleaseType = "release"
	ReleaseTypeSnapshot ReleaseType = "snapshot"
	ReleaseTypeOldBeta  ReleaseType = "old_beta"
	ReleaseTypeOldAlpha ReleaseType = "old_alpha"
)

type Release struct {
	ID          string
	Type        ReleaseType
	URL         string
	ReleaseTime time.Time
}

type LatestReleases struct {
	Release  string
	Snapshot string
}

type VersionManifest struct {
	Latest   LatestReleases
	Releases []Release
}
