package models

import "time"

type Program struct {
	ID                  string
	ProgramName         string
	State               string
	ProgramType         string
	ProgramStatus       string
	CurrentWindowStatus string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
