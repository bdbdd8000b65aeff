package database

type ArtifactRepository interface {
	GetArtifact(destination string) (*Artifact, error)
	ListArtifacts() ([]Artifact, error)
	GetArtifactCount() (int, error)

	SaveArtifact(artifact Artifact) (bool, error)
}
