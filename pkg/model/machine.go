package model

import (
	"fmt"
	"strings"
	"time"
)

// Architecture is the root of the descriptive processor hierarchy
// (Architecture -> Microarchitecture -> Processor). The hierarchy is used
// for display only; it plays no part in authorization or scheduling.
type Architecture struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"index;unique" json:"name"`
}

type Microarchitecture struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	ArchID       uint         `json:"archId"`
	Architecture Architecture `gorm:"foreignKey:ArchID" json:"architecture"`
	Name         string       `json:"name"`
	URL          *string      `json:"url,omitempty"`
}

type Processor struct {
	ID                uint              `gorm:"primarykey" json:"id"`
	MicroarchID       uint              `json:"microarchId"`
	Microarchitecture Microarchitecture `gorm:"foreignKey:MicroarchID" json:"microarchitecture"`
	Name              string            `json:"name"`
	Cores             int               `json:"cores"`
	Threads           int               `json:"threads"`
	FreqGHz           float64           `json:"freqGHz"`
	URL               *string           `json:"url,omitempty"`
}

// Machine domain object defining a physical compute machine.
type Machine struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Name        string    `gorm:"index;unique" json:"name"`
	ProcessorID uint      `json:"processorId"`
	Processor   Processor `json:"processor"`
	MemoryGB    int       `json:"memoryGB"`
	Disks       []Disk    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"disks"`
	Nics        []Nic     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"nics"`
}

// Disk is pure attribute data describing one of a machine's disks.
type Disk struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	MachineID  uint    `json:"machineId"`
	Vendor     *string `json:"vendor,omitempty"`
	Model      *string `json:"model,omitempty"`
	CapacityGB int     `json:"capacityGB"`
	SSD        bool    `json:"ssd"`
}

// ShortDescription renders the disk as e.g. "Intel 512 GiB (SSD)".
func (d Disk) ShortDescription() string {
	vendor := ""
	if d.Vendor != nil {
		vendor = *d.Vendor + " "
	}

	kind := "non-SSD"
	if d.SSD {
		kind = "SSD"
	}

	return fmt.Sprintf("%s%d GiB (%s)", vendor, d.CapacityGB, kind)
}

// Nic is pure attribute data describing one of a machine's network interfaces.
type Nic struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	MachineID  uint    `json:"machineId"`
	Vendor     *string `json:"vendor,omitempty"`
	Model      *string `json:"model,omitempty"`
	MacAddress string  `json:"macAddress"`
	SpeedGbps  int     `json:"speedGbps"`
}

// MacFormatted renders the stored bare-hex MAC as colon-separated octet pairs.
func (n Nic) MacFormatted() string {
	var pairs []string
	for i := 0; i < len(n.MacAddress); i += 2 {
		end := i + 2
		if end > len(n.MacAddress) {
			end = len(n.MacAddress)
		}
		pairs = append(pairs, n.MacAddress[i:end])
	}
	return strings.Join(pairs, ":")
}

// ShortDescription renders the NIC as e.g. "aa:bb:cc:dd:ee:ff - Intel X540 10 Gbps".
func (n Nic) ShortDescription() string {
	vendor := ""
	if n.Vendor != nil {
		vendor = *n.Vendor + " "
	}

	model := ""
	if n.Model != nil {
		model = *n.Model + " "
	}

	return fmt.Sprintf("%s - %s%s%d Gbps", n.MacFormatted(), vendor, model, n.SpeedGbps)
}
