package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ReFOiL/fitboddy-admin/internal/adminclient"
	"github.com/ReFOiL/fitboddy-admin/pkg/logger"
)

// adminctl is a terminal console over the same client layer the web panel
// uses: list and filter questions, flip activation in bulk, move a question.

type terminalNavigator struct {
	path string
}

func (n *terminalNavigator) CurrentPath() string { return n.path }

func (n *terminalNavigator) Navigate(path string) {
	n.path = path
	if path == adminclient.LoginPath {
		fmt.Fprintln(os.Stderr, "session expired: admin token rejected")
	}
}

func main() {
	logger.InitLogger()

	baseURL := flag.String("url", "http://localhost:8080", "admin API base URL")
	token := flag.String("token", os.Getenv("ADMIN_TOKEN"), "admin token")
	search := flag.String("search", "", "substring filter for questions list")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	session := adminclient.NewSession(*token, &terminalNavigator{path: "/"})
	client := adminclient.NewClient(*baseURL, session, logger.Log)
	cache := adminclient.NewCache()
	view := adminclient.NewQuestionListView(client, cache)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch flag.Arg(0) {
	case "questions":
		err = listQuestions(ctx, view, *search)
	case "activate":
		err = bulkSetActive(ctx, view, client, flag.Args()[1:], true)
	case "deactivate":
		err = bulkSetActive(ctx, view, client, flag.Args()[1:], false)
	case "move":
		err = move(ctx, view, client, flag.Args()[1:])
	case "users":
		err = listUsers(ctx, client)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func listQuestions(ctx context.Context, view *adminclient.QuestionListView, search string) error {
	if err := view.Load(ctx); err != nil {
		return err
	}
	view.SetSearch(search)
	for _, q := range view.Rows() {
		marker := " "
		if q.IsSystem() {
			marker = "*"
		}
		active := "active"
		if !q.IsActive {
			active = "inactive"
		}
		fmt.Printf("%s %4d  #%-3d %-30s %-16s %s\n", marker, q.Order, q.ID, q.Key, q.AnswerType, active)
	}
	return nil
}

func bulkSetActive(ctx context.Context, view *adminclient.QuestionListView, client *adminclient.Client, args []string, isActive bool) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	if err := view.Load(ctx); err != nil {
		return err
	}

	// Bulk actions only apply to selectable rows, same as the panel: system
	// questions and unknown ids are rejected before anything hits the wire.
	for _, id := range ids {
		view.ToggleSelect(id)
	}
	selected := view.SelectedIDs()
	if len(selected) != len(ids) {
		return fmt.Errorf("ids must be non-system questions from the current list (selectable: %v)", view.SelectableIDs())
	}

	bulk := adminclient.NewBulkActionController(view, client)
	if err := bulk.SetActive(ctx, selected, isActive); err != nil {
		return fmt.Errorf("bulk update failed: %w", err)
	}
	fmt.Printf("updated %d questions\n", len(selected))
	return nil
}

func move(ctx context.Context, view *adminclient.QuestionListView, client *adminclient.Client, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	if len(ids) != 2 {
		return fmt.Errorf("move needs exactly two ids: <dragged> <target>")
	}
	if err := view.Load(ctx); err != nil {
		return err
	}
	view.SetReorderMode(true)
	reorder := adminclient.NewReorderController(view, client)
	if err := reorder.Drop(ctx, ids[0], ids[1]); err != nil {
		return fmt.Errorf("move failed: %w", err)
	}
	return nil
}

func listUsers(ctx context.Context, client *adminclient.Client) error {
	users, err := client.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		username := "-"
		if u.Username != nil {
			username = *u.Username
		}
		fmt.Printf("#%-4d tg:%-12d %-20s completed:%t\n", u.ID, u.TelegramID, username, u.HasCompletedProfile)
	}
	return nil
}

func parseIDs(args []string) ([]int64, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no ids given")
	}
	ids := make([]int64, 0, len(args))
	for _, raw := range strings.Split(strings.Join(args, ","), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: adminctl [flags] <command>

commands:
  questions              list questions (honors -search)
  activate <ids>         bulk-activate questions
  deactivate <ids>       bulk-deactivate questions
  move <dragged> <target> move a question onto another row
  users                  list bot users`)
}
