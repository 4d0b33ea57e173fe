// Package objectstore is the gateway between the video pipeline and the bucket
// that holds generated artifacts. Objects are addressed by owner, task and
// artifact kind (see domain.ArtifactKey); the S3 implementation works against
// AWS S3 and S3-compatible stores such as MinIO.
package objectstore
