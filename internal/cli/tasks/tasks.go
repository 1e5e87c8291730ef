package tasks

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sprouthq/sprout/internal/cli"
	"github.com/sprouthq/sprout/internal/constants"
	"github.com/sprouthq/sprout/internal/models"
	"github.com/sprouthq/sprout/internal/utils"
	"github.com/sprouthq/sprout/internal/validation"
)

type TaskAddCmd struct {
	Name     string   `arg:"" help:"Task name."`
	Due      string   `help:"Due date in YYYY-MM-DD format (default: today)." default:""`
	Priority int      `help:"Priority 1 (highest) to 4 (lowest)." default:"4"`
	Folder   string   `help:"Folder label for grouping."`
	Subtask  []string `help:"Subtask text, repeatable."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	day, err := cli.ResolveDate(c.Due)
	if err != nil {
		return err
	}
	due, err := utils.ParseDate(day)
	if err != nil {
		return err
	}

	task := models.Task{
		ID:        uuid.New().String(),
		Name:      c.Name,
		DueDate:   due,
		Priority:  c.Priority,
		Folder:    c.Folder,
		CreatedAt: time.Now(),
	}
	for _, text := range c.Subtask {
		task.Subtasks = append(task.Subtasks, models.Subtask{
			ID:   uuid.New().String(),
			Text: text,
		})
	}

	if err := validation.ValidateTask(task); err != nil {
		return err
	}
	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (due %s, p%d)\n", task.Name, day, task.Priority)
	return nil
}

type TaskListCmd struct {
	Folder string `help:"Only show tasks in this folder."`
	All    bool   `help:"Include completed tasks."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}

	shown := 0
	for _, t := range tasks {
		if c.Folder != "" && t.Folder != c.Folder {
			continue
		}
		if t.Completed && !c.All {
			continue
		}
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		fmt.Printf("%s p%d %s  %s\n", mark, t.Priority, t.DueDate.Format(constants.DateFormat), t.Name)
		for _, st := range t.Subtasks {
			subMark := "[ ]"
			if st.Completed {
				subMark = "[x]"
			}
			fmt.Printf("    %s %s\n", subMark, st.Text)
		}
		shown++
	}
	if shown == 0 {
		fmt.Println("No tasks found.")
	}
	return nil
}

type TaskDoneCmd struct {
	Name string `arg:"" help:"Task name or ID."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	task, err := findTask(ctx, c.Name)
	if err != nil {
		return err
	}

	task.Completed = !task.Completed
	if err := ctx.Store.UpdateTask(task); err != nil {
		return err
	}

	if task.Completed {
		fmt.Printf("Completed task: %s\n", task.Name)
	} else {
		fmt.Printf("Reopened task: %s\n", task.Name)
	}
	return nil
}

type TaskCheckCmd struct {
	Name  string `arg:"" help:"Task name or ID."`
	Index int    `arg:"" help:"0-based subtask index."`
}

func (c *TaskCheckCmd) Run(ctx *cli.Context) error {
	task, err := findTask(ctx, c.Name)
	if err != nil {
		return err
	}
	if c.Index < 0 || c.Index >= len(task.Subtasks) {
		return fmt.Errorf("subtask index %d out of range (task has %d)", c.Index, len(task.Subtasks))
	}

	task.Subtasks[c.Index].Completed = !task.Subtasks[c.Index].Completed
	if err := ctx.Store.UpdateTask(task); err != nil {
		return err
	}

	fmt.Printf("Toggled subtask %d of %q\n", c.Index, task.Name)
	return nil
}

type TaskDeleteCmd struct {
	Name string `arg:"" help:"Task name or ID."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	task, err := findTask(ctx, c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteTask(task.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted task: %s\n", task.Name)
	return nil
}

func findTask(ctx *cli.Context, nameOrID string) (models.Task, error) {
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return models.Task{}, err
	}
	for _, t := range tasks {
		if t.Name == nameOrID {
			return t, nil
		}
	}
	for _, t := range tasks {
		if t.ID == nameOrID {
			return t, nil
		}
	}
	return models.Task{}, fmt.Errorf("task %q not found", nameOrID)
}
