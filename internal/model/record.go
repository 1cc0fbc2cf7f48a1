// Package model defines domain types for pulse records and derived stats.
package model

// Module identifies which dashboard a record belongs to.
type Module string

// Known modules.
const (
	ModuleTasks    Module = "tasks"
	ModuleContacts Module = "contacts"
	ModuleHabits   Module = "habits"
	ModuleFitness  Module = "fitness"
	ModuleMeals    Module = "meals"
	ModuleFinance  Module = "finance"
	ModuleTravel   Module = "travel"
	ModuleWellness Module = "wellness"
)

// Modules lists every module in display order.
var Modules = []Module{
	ModuleTasks,
	ModuleContacts,
	ModuleHabits,
	ModuleFitness,
	ModuleMeals,
	ModuleFinance,
	ModuleTravel,
	ModuleWellness,
}

// ParseModule returns the module named s and whether it is known.
func ParseModule(s string) (Module, bool) {
	for _, m := range Modules {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Kind values used as discriminants by the composers.
const (
	KindIncome  = "income"
	KindExpense = "expense"
	KindDone    = "done"
)

// Measure names carried in Record.Values.
const (
	ValueAmount      = "amount"
	ValueSets        = "sets"
	ValueReps        = "reps"
	ValueWeight      = "weight"
	ValueDurationMin = "duration_min"
	ValueCalories    = "calories"
	ValueProteinG    = "protein_g"
	ValueCount       = "value"
	ValueMood        = "mood"
	ValueSleepHours  = "sleep_hours"
	ValueEnergy      = "energy"
	ValueCost        = "cost"
	ValueNights      = "nights"
)

// Record is one dated entry exported by the external data service.
// Date is always a normalized YYYY-MM-DD string; the record source does the
// time zone conversion before a Record is built.
type Record struct {
	ID     string             `json:"id"`
	Module Module             `json:"module"`
	Date   string             `json:"date"`
	Kind   string             `json:"kind,omitempty"`
	Entity string             `json:"entity,omitempty"`
	Label  string             `json:"label,omitempty"`
	Values map[string]float64 `json:"values,omitempty"`

	// FilePath is the export file the record was read from.
	FilePath string `json:"-"`
}

// Value returns the named measure and whether it was recorded.
func (r Record) Value(name string) (float64, bool) {
	v, ok := r.Values[name]
	return v, ok
}
