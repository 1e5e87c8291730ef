package system

import (
	"fmt"

	"github.com/sprouthq/sprout/internal/cli"
	"github.com/sprouthq/sprout/internal/keyring"
	"github.com/sprouthq/sprout/internal/models"
	"github.com/sprouthq/sprout/internal/utils"
	"github.com/sprouthq/sprout/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	if dbReachable {
		if err := checkHabitDefinitions(ctx); err != nil {
			fmt.Printf("❌ Habit definitions valid: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Habit definitions valid: OK\n")
		}
	} else {
		fmt.Printf("⊘ Habit definitions valid: SKIPPED (database not reachable)\n")
	}

	if dbReachable {
		if err := checkDayRecordKeys(ctx, utils.Today()); err != nil {
			fmt.Printf("❌ Today's completion keys consistent: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Today's completion keys consistent: OK\n")
		}
	} else {
		fmt.Printf("⊘ Today's completion keys consistent: SKIPPED (database not reachable)\n")
	}

	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: UNAVAILABLE (postgres credentials cannot be stored)\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

// checkDayRecordKeys verifies that every completion key stored for the
// given day parses and references a habit that still exists. Orphaned keys
// mean a habit was deleted without its records.
func checkDayRecordKeys(ctx *cli.Context, day string) error {
	rec, err := ctx.Store.GetDayRecord(day)
	if err != nil {
		return err
	}
	for key := range rec {
		habitID, _, err := models.ParseCompletionKey(key)
		if err != nil {
			return err
		}
		if _, err := ctx.Store.GetHabit(habitID); err != nil {
			return fmt.Errorf("completion key %q references unknown habit %s", key, habitID)
		}
	}
	return nil
}

func checkHabitDefinitions(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	for _, h := range habits {
		if err := validation.ValidateHabit(h); err != nil {
			return fmt.Errorf("habit %q: %w", h.Name, err)
		}
	}
	return nil
}
