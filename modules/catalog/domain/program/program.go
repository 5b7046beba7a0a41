package program

import (
	"time"

	"github.com/google/uuid"
)

// Program is one row of the ESA program registry. The KPI aggregator
// reads it to score data quality, so string fields keep whatever casing
// the upstream sync wrote.
type Program struct {
	ID                  uuid.UUID `json:"id"`
	ProgramName         string    `json:"program_name"`
	State               string    `json:"state"`
	ProgramType         string    `json:"program_type"`
	ProgramStatus       string    `json:"program_status"`
	CurrentWindowStatus string    `json:"current_window_status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Complete reports whether every field required for a usable registry
// entry is populated.
func (p *Program) Complete() bool {
	return p.ProgramName != "" && p.State != "" && p.ProgramType != "" && p.ProgramStatus != ""
}

// Conflicting reports whether the program claims to be active while its
// current application window is closed.
func (p *Program) Conflicting() bool {
	return p.ProgramStatus == "Active" && p.CurrentWindowStatus == "Closed"
}

type FindParams struct {
	Limit  int
	Offset int
	State  string
	Status string
	Type   string
}
