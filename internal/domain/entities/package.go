package entities

// PackageResources is the server shape requested from the panel.
// MemoryMB and CPUPercent of 0 mean unlimited.
type PackageResources struct {
	MemoryMB        int64  `json:"memoryMb" yaml:"memoryMb"`
	CPUPercent      int64  `json:"cpuPercent" yaml:"cpuPercent"`
	DiskMB          int64  `json:"diskMb" yaml:"diskMb"`
	AllocationCount int64  `json:"allocationCount" yaml:"allocationCount"`
	DatabaseCount   int64  `json:"databaseCount" yaml:"databaseCount"`
	EggID           int64  `json:"eggId" yaml:"eggId"`
	NestID          int64  `json:"nestId" yaml:"nestId"`
	LocationID      int64  `json:"locationId" yaml:"locationId"`
	StartupCommand  string `json:"startupCommand" yaml:"startupCommand"`
}

// Package is a sellable hosting plan. Price is in the smallest currency unit.
type Package struct {
	ID          string           `json:"id" yaml:"id"`
	DisplayName string           `json:"displayName" yaml:"displayName"`
	Price       int64            `json:"price" yaml:"price"`
	Resources   PackageResources `json:"resources" yaml:"resources"`
}
