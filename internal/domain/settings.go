package domain

const DefaultInstanceSize = 16

type Settings struct {
	InstanceSize   int
	TargetRootPath string
	IconRootPath   string
	Runtimes       []RuntimeConfig
}
