package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"lead_console/internal/activity"
	"lead_console/internal/admin"
	"lead_console/internal/auth"
	"lead_console/internal/dashboard"
	leadsclient "lead_console/internal/leads/client"
	"lead_console/internal/leads/export"
	"lead_console/internal/leads/store"
	"lead_console/internal/leads/transport"
	"lead_console/internal/messaging"
	"lead_console/platform/apperr"
	"lead_console/platform/config"
	"lead_console/platform/logger"
	"lead_console/platform/phone"
	"lead_console/platform/validator"
)

const usage = `lead console commands:
  login     -email -password
  list      -page -limit -status -search -start -end
  status    -id -set
  followup  -id -date -recurrence -message -whatsapp -active
  edit      -id -name -email -phone -message
  delete    -id
  add       -name -email -phone -message -source
  export    -limit -out
  import    -file
  send      -id -channel -message
  activity  -user | -add -text | -update ID -text | -remove ID
  stats
  profile
  dashboard -page -limit

authenticated commands read the bearer token from LEAD_TOKEN.`

type app struct {
	leads     *leadsclient.Client
	store     *store.Store
	auth      *auth.Client
	messaging *messaging.Client
	activity  *activity.Client
	admin     *admin.Client
	dashboard *dashboard.Service
	phone     *phone.Normalizer
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	val := validator.New()

	leads := leadsclient.New(cfg, val, log)
	adminClient := admin.NewClient(cfg, log)

	a := &app{
		leads:     leads,
		store:     store.New(leads, log),
		auth:      auth.NewClient(cfg, val, log),
		messaging: messaging.NewClient(cfg, val, log),
		activity:  activity.NewClient(cfg, val, log),
		admin:     adminClient,
		dashboard: dashboard.NewService(leads, adminClient, log),
		phone:     phone.NewNormalizer(cfg),
	}

	ctx := context.Background()
	args := os.Args[2:]

	var runErr error
	switch os.Args[1] {
	case "login":
		runErr = a.runLogin(ctx, args)
	case "list":
		runErr = a.runList(ctx, args)
	case "status":
		runErr = a.runStatus(ctx, args)
	case "followup":
		runErr = a.runFollowUp(ctx, args)
	case "edit":
		runErr = a.runEdit(ctx, args)
	case "delete":
		runErr = a.runDelete(ctx, args)
	case "add":
		runErr = a.runAdd(ctx, args)
	case "export":
		runErr = a.runExport(ctx, args)
	case "import":
		runErr = a.runImport(ctx, args)
	case "send":
		runErr = a.runSend(ctx, args)
	case "activity":
		runErr = a.runActivity(ctx, args)
	case "stats":
		runErr = a.runStats(ctx)
	case "profile":
		runErr = a.runProfile(ctx)
	case "dashboard":
		runErr = a.runDashboard(ctx, args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if runErr != nil {
		if apperr.Is(runErr, apperr.KindUnauthorized) {
			fmt.Fprintln(os.Stderr, "session expired or rejected, log in again")
		} else {
			fmt.Fprintln(os.Stderr, "error:", runErr)
		}
		os.Exit(1)
	}
}

// token resolves the bearer token from the environment and refuses to
// proceed with one that is already past its expiry claim.
func (a *app) token() (string, error) {
	raw := os.Getenv("LEAD_TOKEN")
	if raw == "" {
		return "", apperr.Unauthorized("LEAD_TOKEN is not set, run login first")
	}

	session, err := auth.NewSession(raw)
	if err != nil {
		return "", err
	}
	if session.Expired() {
		session.Invalidate()
		return "", apperr.Unauthorized("token expired")
	}
	return session.Token(), nil
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	_ = fs.Parse(args)

	result := a.auth.Login(ctx, auth.Credentials{Email: *email, Password: *password})
	if !result.Success {
		return apperr.Unauthorized(result.Error)
	}

	session, err := auth.NewSession(result.Token)
	if err != nil {
		return err
	}

	fmt.Println(result.Token)
	if expires := session.ExpiresAt(); !expires.IsZero() {
		fmt.Fprintln(os.Stderr, "token valid until", expires.Format(time.RFC3339))
	}
	fmt.Fprintln(os.Stderr, "export LEAD_TOKEN to use authenticated commands")
	return nil
}

func (a *app) runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	status := fs.String("status", "", "status or followup_* pseudo-filter")
	search := fs.String("search", "", "match against name/email/phone")
	start := fs.String("start", "", "creation date lower bound (YYYY-MM-DD)")
	end := fs.String("end", "", "creation date upper bound (YYYY-MM-DD)")
	_ = fs.Parse(args)

	token, err := a.token()
	if err != nil {
		return err
	}

	result := a.leads.List(ctx, token, *page, *limit, transport.ListFilters{
		StatusFilter: *status,
		Search:       *search,
		StartDate:    *start,
		EndDate:      *end,
	})
	if !result.OK {
		return fmt.Errorf("list failed: %w", result.Err)
	}

	fmt.Printf("page %d/%d, %d leads total (new %d, contacted %d, converted %d)\n",
		result.Page, result.TotalPages, result.TotalLeads,
		result.Counts.New, result.Counts.Contacted, result.Counts.Converted)
	for _, lead := range result.Leads {
		printLead(lead)
	}
	return nil
}

func (a *app) runStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	id := fs.String("id", "", "lead id")
	set := fs.String("set", "", "new status: new|contacted|converted")
	_ = fs.Parse(args)

	token, err := a.token()
	if err != nil {
		return err
	}
	if err := a.loadCollection(ctx, token); err != nil {
		return err
	}

	if !a.store.UpdateStatus(ctx, *id, transport.LeadStatus(*set), token) {
		return fmt.Errorf("status update failed for %s", *id)
	}
	fmt.Printf("lead %s is now %s\n", *id, *set)
	return nil
}

func (a *app) runFollowUp(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("followup", flag.ExitOnError)
	id := fs.String("id", "", "lead id")
	date := fs.String("date", "", "follow-up time (RFC 3339), empty clears the date")
	recurrence := fs.String("recurrence", "once", "once|tomorrow|3days|weekly")
	message := fs.String("message", "", "reminder message")
	whatsapp := fs.Bool("whatsapp", false, "WhatsApp opt-in")
	active := fs.Bool("active", true, "follow-up active")
	_ = fs.Parse(args)

	token, err := a.token()
	if err != nil {
		return err
	}
	if err := a.loadCollection(ctx, token); err != nil {
		return err
	}

	followUp := transport.FollowUp{
		Recurrence:    transport.Recurrence(*recurrence),
		Message:       *message,
		WhatsappOptIn: *whatsapp,
		Active:        *active,
	}
	if *date != "" {
		parsed, err := time.Parse(time.RFC3339, *date)
		if err != nil {
			return apperr.Validation("date must be RFC 3339")
		}
		followUp.Date = &parsed
	}

	if !a.store.UpdateFollowUp(ctx, *id, followUp, token) {
		return fmt.Errorf("follow-up update failed for %s", *id)
	}
	fmt.Printf("follow-up saved for %s\n", *id)
	return nil
}

func (a *app) runEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.String("id", "", "lead id")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	phoneNumber := fs.String("phone", "", "phone number")
	message := fs.String("message", "", "free-text message")
	_ = fs.Parse(args)

	token, err := a.token()
	if err != nil {
		return err
	}
	if err := a.loadCollection(ctx, token); err != nil {
		return err
	}

	var updates transport.UpdateLeadRequest
	if *name != "" {
		updates.FullName = name
	}
	if *email != "" {
		updates.Email = email
	}
	if *phoneNumber != "" {
		normalized := a.phone.E164(*phoneNumber)
		updates.Phone = &normalized
	}
	if *message != "" {
		updates.Message = message
	}

	if !a.store.UpdateFields(ctx, *id, updates, token) {
		return fmt.Errorf("edit failed for %s", *id)
	}
	fmt.Printf("lead %s updated\n", *id)
	return nil
}

func (a *app) runDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "lead id")
	_ = fs.Parse(args)

	token, err := a.token()
	if err != nil {
		return err
	}
	if err := a.loadCollection(ctx, token); err != nil {
		return err
	}

	if !a.store.Delete(ctx, *id, token) {
		return fmt.Errorf("delete failed for %s", *id)
	}
	fmt.Printf("lead %s deleted\n", *id)
	return nil
}

func (a *app) runAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	phoneNumber := fs.String("phone", "", "phone number")
	message := fs.String("message", "", "free-text message")
	source := fs.String("source", "admin-manual", "lead source tag")
	_ = fs.Parse(args)

	result := a.leads.CreatePublic(ctx, transport.CreateLeadRequest{
		FullName: *name,
		Email:    *email,
		Phone:    a.phone.E164(*phoneNumber),
		Message:  *message,
		Source:   *source,
	})
	if !result.Success {
		return fmt.Errorf("lead creation failed: %s", result.Error)
	}

	if result.Lead != nil {
		fmt.Printf("created lead %s\n", result.Lead.ID)
	} else {
		fmt.Println("lead created")
	}
	return nil
}

func (a *app) runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	limit := fs.Int("limit", 1000, "maximum leads to export")
	out := fs.String("out", "", "output file (default stdout)")
	_ = fs.Parse(args)

	token, err := a.token()
	if err != nil {
		return err
	}

	result := a.leads.List(ctx, token, 1, *limit, transport.ListFilters{})
	if !result.OK {
		return fmt.Errorf("export fetch failed: %w", result.Err)
	}

	csvText := export.CSV(result.Leads)
	if *out == "" {
		fmt.Println(csvText)
		return nil
	}
	if err := os.WriteFile(*out, []byte(csvText+"\n"), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(os.Stderr, "exported %d leads to %s\n", len(result.Leads), *out)
	return nil
}

func (a *app) runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "CSV/XLSX file to upload")
	_ = fs.Parse(args)

	token, err := a.token()
	if err != nil {
		return err
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	message, err := a.leads.ImportFile(ctx, *file, f, token)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if message == "" {
		message = "import accepted"
	}
	fmt.Println(message)
	return nil
}

func (a *app) runSend(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	id := fs.String("id", "", "lead id")
	channel := fs.String("channel", "email", "email|whatsapp|both")
	message := fs.String("message", "", "message body")
	_ = fs.Parse(args)

	token, err := a.token()
	if err != nil {
		return err
	}

	result, err := a.messaging.Send(ctx, *id, messaging.Channel(*channel), *message, token)
	if err != nil {
		return err
	}
	if result.Message != "" {
		fmt.Println(result.Message)
	} else {
		fmt.Println("message sent")
	}
	return nil
}

func (a *app) runActivity(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("activity", flag.ExitOnError)
	user := fs.String("user", "", "owning user id")
	add := fs.Bool("add", false, "add an entry")
	update := fs.String("update", "", "activity id to update")
	remove := fs.String("remove", "", "activity id to delete")
	text := fs.String("text", "", "entry text")
	_ = fs.Parse(args)

	token, err := a.token()
	if err != nil {
		return err
	}

	switch {
	case *add:
		created, err := a.activity.Add(ctx, activity.AddRequest{UserID: *user, Text: *text}, token)
		if err != nil {
			return err
		}
		fmt.Printf("added activity %s\n", created.ID)
	case *update != "":
		if err := a.activity.Update(ctx, *update, *text, token); err != nil {
			return err
		}
		fmt.Println("activity updated")
	case *remove != "":
		if err := a.activity.Delete(ctx, *remove, token); err != nil {
			return err
		}
		fmt.Println("activity deleted")
	default:
		entries, err := a.activity.ListForUser(ctx, *user, token)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			fmt.Printf("%s  %s  %s\n", entry.ID, entry.CreatedAt.Format("2006-01-02 15:04"), entry.Text)
		}
	}
	return nil
}

func (a *app) runStats(ctx context.Context) error {
	token, err := a.token()
	if err != nil {
		return err
	}

	stats, err := a.admin.DailyStats(ctx, token)
	if err != nil {
		return err
	}
	fmt.Printf("today: %d leads (new %d, contacted %d, converted %d)\n",
		stats.TotalLeads, stats.New, stats.Contacted, stats.Converted)
	return nil
}

func (a *app) runProfile(ctx context.Context) error {
	token, err := a.token()
	if err != nil {
		return err
	}

	profile, err := a.admin.Profile(ctx, token)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s  %s\n", profile.ID, profile.Email, profile.Name)
	return nil
}

func (a *app) runDashboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	_ = fs.Parse(args)

	token, err := a.token()
	if err != nil {
		return err
	}

	overview := a.dashboard.Overview(ctx, token, *page, *limit, transport.ListFilters{})

	if overview.Profile != nil {
		name := overview.Profile.Name
		if name == "" {
			name = overview.Profile.Email
		}
		fmt.Printf("signed in as %s\n", name)
	}
	if overview.Stats != nil {
		fmt.Printf("today: %d leads (new %d, contacted %d, converted %d)\n",
			overview.Stats.TotalLeads, overview.Stats.New, overview.Stats.Contacted, overview.Stats.Converted)
	}
	if !overview.List.OK {
		fmt.Println("lead list unavailable")
		return nil
	}
	fmt.Printf("page %d/%d\n", overview.List.Page, overview.List.TotalPages)
	for _, lead := range overview.List.Leads {
		printLead(lead)
	}
	return nil
}

// loadCollection primes the store with the current lead collection so
// mutations have a cached copy to update and roll back.
func (a *app) loadCollection(ctx context.Context, token string) error {
	result := a.leads.List(ctx, token, 1, 1000, transport.ListFilters{})
	if !result.OK {
		return fmt.Errorf("could not load leads: %w", result.Err)
	}
	a.store.SetLeads(result.Leads)
	return nil
}

func printLead(lead transport.Lead) {
	followUp := "-"
	if lead.FollowUp != nil && lead.FollowUp.Active && lead.FollowUp.Date != nil {
		followUp = lead.FollowUp.Date.Format("2006-01-02 15:04")
	}
	fmt.Printf("%s  %-10s  %-25s  %-25s  followup: %s\n",
		lead.ID, lead.Status, lead.FullName, lead.Email, followUp)
}
