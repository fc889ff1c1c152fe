package models

// EcosystemType names the habitat a project monitors.
type EcosystemType string

const (
	EcosystemMangrove  EcosystemType = "mangrove"
	EcosystemSeagrass  EcosystemType = "seagrass"
	EcosystemSaltmarsh EcosystemType = "saltmarsh"
	EcosystemKelp      EcosystemType = "kelp"
)

// ProjectStatus is the registry-side lifecycle stage.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectActive     ProjectStatus = "active"
	ProjectMonitoring ProjectStatus = "monitoring"
	ProjectCompleted  ProjectStatus = "completed"
)

// Project is a read-mostly mirror of a registry project, kept locally so
// capture forms can offer project selection while offline. The sync engine
// only reads it.
type Project struct {
	ID           string
	Name         string
	Description  string
	Ecosystem    EcosystemType
	Location     Location
	RadiusMeters float64
	Status       ProjectStatus
	CreatedAt    int64
}
