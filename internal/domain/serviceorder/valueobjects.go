package serviceorder

import (
	"fmt"
	"strings"
)

type FuelLevel string

const (
	FuelEmpty        FuelLevel = "empty"
	FuelQuarter      FuelLevel = "1/4"
	FuelHalf         FuelLevel = "1/2"
	FuelThreeQuarter FuelLevel = "3/4"
	FuelFull         FuelLevel = "full"
)

var validFuelLevels = map[FuelLevel]bool{
	FuelEmpty:        true,
	FuelQuarter:      true,
	FuelHalf:         true,
	FuelThreeQuarter: true,
	FuelFull:         true,
}

func (f FuelLevel) String() string {
	return string(f)
}

func (f FuelLevel) IsValid() bool {
	return validFuelLevels[f]
}

func ParseFuelLevel(s string) (FuelLevel, error) {
	f := FuelLevel(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid fuel level: %s", s)
	}
	return f, nil
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var validPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityNormal: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	return validPriorities[p]
}

// ParsePriority accepts "medium" as an alias of normal. Empty input yields normal.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "medium":
		return PriorityNormal, nil
	}
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}
