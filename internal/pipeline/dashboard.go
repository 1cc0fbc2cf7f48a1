package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/theirongolddev/pulse/internal/calendar"
	"github.com/theirongolddev/pulse/internal/model"
)

// ComposeDashboard composes every module for now. GeneratedAt is left for
// the caller to stamp.
func ComposeDashboard(records []model.Record, goals model.Goals, now calendar.Date) model.Dashboard {
	return model.Dashboard{
		Today:    now.String(),
		Tasks:    ComposeTasks(records, goals, now),
		Contacts: ComposeContacts(records, goals, now),
		Habits:   ComposeHabits(records, goals, now),
		Fitness:  ComposeFitness(records, goals, now),
		Meals:    ComposeMeals(records, goals, now),
		Finance:  ComposeFinance(records, goals, now),
		Travel:   ComposeTravel(records, goals, now),
		Wellness: ComposeWellness(records, goals, now),
	}
}

// ComposeModule composes one module and returns its typed stats as any,
// ready for JSON encoding.
func ComposeModule(m model.Module, records []model.Record, goals model.Goals, now calendar.Date) (any, error) {
	switch m {
	case model.ModuleTasks:
		return ComposeTasks(records, goals, now), nil
	case model.ModuleContacts:
		return ComposeContacts(records, goals, now), nil
	case model.ModuleHabits:
		return ComposeHabits(records, goals, now), nil
	case model.ModuleFitness:
		return ComposeFitness(records, goals, now), nil
	case model.ModuleMeals:
		return ComposeMeals(records, goals, now), nil
	case model.ModuleFinance:
		return ComposeFinance(records, goals, now), nil
	case model.ModuleTravel:
		return ComposeTravel(records, goals, now), nil
	case model.ModuleWellness:
		return ComposeWellness(records, goals, now), nil
	}
	return nil, fmt.Errorf("unknown module %q", m)
}

// DashboardEqual reports whether two dashboards carry the same stats,
// ignoring GeneratedAt.
func DashboardEqual(a, b model.Dashboard) bool {
	a.GeneratedAt = b.GeneratedAt
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ja) == string(jb)
}
