// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands through rootCmd against a temp XDG data directory.
package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/fuerza/internal/auth"
	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/storage"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string no truncation", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world this is a long string", 10, "hello w..."},
		{"multibyte runes", "pollo con ñoquis y más", 10, "pollo c..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"abc", 6, "abc   "},
		{"abcdef", 3, "abcdef"},
		{"Lácteos", 9, "Lácteos  "},
		{"", 2, "  "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "fuerza" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "fuerza")
	}
	for _, name := range []string{"db", "user"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"register", "login", "logout", "photo", "workout", "meal", "measure",
		"report", "options", "export", "import", "migrate", "mcp", "serve",
	}

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("Expected %q command to be registered", name)
		}
	}

	for _, parent := range []string{"workout", "meal", "measure"} {
		cmd, _, err := rootCmd.Find([]string{parent, "add"})
		if err != nil || cmd.Name() != "add" {
			t.Errorf("Expected %s add subcommand", parent)
		}
	}
}

func TestMeasureAddCmdFlags(t *testing.T) {
	for _, f := range models.MeasurementFields {
		flag := measureAddCmd.Flags().Lookup(f.Name)
		if flag == nil {
			t.Errorf("Expected --%s flag on measure add", f.Name)
			continue
		}
		if flag.DefValue == "" || flag.DefValue == "0" {
			t.Errorf("--%s default = %q, want field default", f.Name, flag.DefValue)
		}
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	want := map[string]bool{"json": true, "yaml": true, "markdown": true}
	for _, a := range exportCmd.ValidArgs {
		delete(want, a)
	}
	if len(want) != 0 {
		t.Errorf("Missing export formats: %v", want)
	}
}

// helpLabels splits a help line such as "Fuerza (strength), Cardio" into
// every label and alias it advertises.
func helpLabels(line string) []string {
	var labels []string
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if open := strings.Index(part, "("); open >= 0 {
			labels = append(labels, strings.TrimSuffix(part[open+1:], ")"))
			part = strings.TrimSpace(part[:open])
		}
		labels = append(labels, part)
	}
	return labels
}

// helpBlock returns the indented lines that follow heading in text, joined.
func helpBlock(t *testing.T, text, heading string) string {
	t.Helper()
	_, rest, ok := strings.Cut(text, heading)
	if !ok {
		t.Fatalf("heading %q not found", heading)
	}
	var lines []string
	for _, line := range strings.Split(strings.TrimLeft(rest, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, strings.TrimSpace(line))
	}
	return strings.Join(lines, ", ")
}

func TestAdvertisedLabelsParse(t *testing.T) {
	meals := helpLabels(helpBlock(t, mealCmd.Long, "CATEGORIES:\n"))
	workouts := helpLabels(helpBlock(t, workoutCmd.Long, "TYPES:\n"))

	for _, line := range strings.Split(rootCmd.Long, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
		switch fields[0] {
		case "Meals":
			meals = append(meals, helpLabels(rest)...)
		case "Workouts":
			rest, _, _ = strings.Cut(rest, " (")
			workouts = append(workouts, helpLabels(rest)...)
		}
	}

	if len(meals) < 14 || len(workouts) < 9 {
		t.Fatalf("Too few labels found: meals=%v workouts=%v", meals, workouts)
	}
	for _, label := range meals {
		if _, err := models.ParseMealCategory(label); err != nil {
			t.Errorf("meal label %q from help does not parse: %v", label, err)
		}
	}
	for _, label := range workouts {
		if _, err := models.ParseWorkoutType(label); err != nil {
			t.Errorf("workout label %q from help does not parse: %v", label, err)
		}
	}
}

func TestReadPassword(t *testing.T) {
	resetFlags()
	t.Setenv("FUERZA_PASSWORD", "")

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	origStdin := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = origStdin
		r.Close()
	})
	if _, err := w.WriteString("s3creto\n"); err != nil {
		t.Fatalf("write stdin: %v", err)
	}
	w.Close()

	got, err := readPassword()
	if err != nil {
		t.Fatalf("readPassword from pipe: %v", err)
	}
	if got != "s3creto" {
		t.Errorf("readPassword() = %q, want %q", got, "s3creto")
	}

	t.Setenv("FUERZA_PASSWORD", "from-env")
	if got, _ := readPassword(); got != "from-env" {
		t.Errorf("readPassword() = %q, want env value", got)
	}

	password = "from-flag"
	defer resetFlags()
	if got, _ := readPassword(); got != "from-flag" {
		t.Errorf("readPassword() = %q, want flag value", got)
	}
}

// setupTestCLI points XDG_DATA_HOME and XDG_CONFIG_HOME at a temp dir so the
// default database and config land there. It returns the database path.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("FUERZA_DATABASE_URL", "")
	t.Setenv("FUERZA_PASSWORD", "")
	t.Setenv("FUERZA_PHOTO_DIR", filepath.Join(tmpDir, "perfiles"))
	resetFlags()

	t.Cleanup(func() {
		if repo != nil {
			repo.Close()
			repo = nil
		}
	})

	return filepath.Join(tmpDir, "fuerza", "fuerza.db")
}

// resetFlags restores every package-level flag variable, since cobra keeps
// values between Execute calls.
func resetFlags() {
	dbURL, userFlag = "", ""
	password, avatarPreset, photoFile = "", "", ""
	workoutDate, workoutNotes = "", ""
	workoutDuration, workoutCalories = 0, 0
	workoutLimit, workoutAll = storage.DefaultRecentLimit, false
	mealDate, mealNotes, mealCalories = "", "", 0
	mealLimit, mealAll = storage.DefaultRecentLimit, false
	measureDate, measureNotes = "", ""
	measureLimit, measureAll = storage.DefaultRecentLimit, false
	for _, f := range models.MeasurementFields {
		*measureValues[f.Name] = f.Default
	}
	exportOutput, exportSince = "", ""
	migrateFrom, migrateDryRun = "", false
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func mustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := run(t, args...); err != nil {
		t.Fatalf("fuerza %s: %v", strings.Join(args, " "), err)
	}
}

func openTestDB(t *testing.T, path string) *storage.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func userByEmail(t *testing.T, db *storage.DB, email string) *models.User {
	t.Helper()
	u, err := db.GetUserByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("GetUserByEmail(%s): %v", email, err)
	}
	return u
}

func TestRegisterLoginAndLogWorkout(t *testing.T) {
	dbPath := setupTestCLI(t)

	mustRun(t, "register", "Ana", "ana@x.com", "--password", "pw1")
	mustRun(t, "login", "ana@x.com", "--password", "pw1")
	mustRun(t, "workout", "add", "cardio", "--date", "2024-01-01", "-d", "30", "-c", "250")

	db := openTestDB(t, dbPath)
	ana := userByEmail(t, db, "ana@x.com")
	if ana.PasswordHash != auth.Hash("pw1") {
		t.Error("Expected sha256 digest of the password")
	}

	workouts, err := db.RecentWorkouts(context.Background(), ana.ID, 5)
	if err != nil {
		t.Fatalf("RecentWorkouts failed: %v", err)
	}
	if len(workouts) != 1 {
		t.Fatalf("Expected 1 workout, got %d", len(workouts))
	}
	w := workouts[0]
	if w.Type != models.WorkoutCardio || w.DurationMinutes != 30 || w.Calories != 250 || w.Date.String() != "2024-01-01" {
		t.Errorf("Unexpected workout: %+v", w)
	}

	mustRun(t, "workout", "list")
	mustRun(t, "report")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "register", "Ana", "ana@x.com", "--password", "pw1")
	err := run(t, "register", "Ana Dos", "ana@x.com", "--password", "pw2")
	if !errors.Is(err, storage.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "register", "Ana", "ana@x.com", "--password", "pw1")
	err := run(t, "login", "ana@x.com", "--password", "nope")
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCommandsRequireLogin(t *testing.T) {
	setupTestCLI(t)

	err := run(t, "workout", "list")
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Errorf("Expected not logged in error, got %v", err)
	}

	mustRun(t, "register", "Ana", "ana@x.com", "--password", "pw1")
	mustRun(t, "login", "ana@x.com", "--password", "pw1")
	mustRun(t, "logout")

	if err := run(t, "meal", "list"); err == nil {
		t.Error("Expected error after logout")
	}
}

func TestUserFlagOverridesLogin(t *testing.T) {
	dbPath := setupTestCLI(t)

	mustRun(t, "register", "Ana", "ana@x.com", "--password", "pw1")
	mustRun(t, "register", "Beto", "beto@x.com", "--password", "pw2")
	mustRun(t, "login", "ana@x.com", "--password", "pw1")
	mustRun(t, "meal", "add", "protein", "pollo", "--user", "beto@x.com", "-c", "300")

	db := openTestDB(t, dbPath)
	meals, _ := db.AllMeals(context.Background(), userByEmail(t, db, "beto@x.com").ID)
	if len(meals) != 1 {
		t.Errorf("Expected meal logged for Beto, got %d", len(meals))
	}
	meals, _ = db.AllMeals(context.Background(), userByEmail(t, db, "ana@x.com").ID)
	if len(meals) != 0 {
		t.Errorf("Expected no meals for Ana, got %d", len(meals))
	}

	if err := run(t, "meal", "list", "--user", "nadie@x.com"); err == nil {
		t.Error("Expected error for unknown user")
	}
}

func TestMealAndMeasure(t *testing.T) {
	dbPath := setupTestCLI(t)

	mustRun(t, "register", "Ana", "ana@x.com", "--password", "pw1")
	mustRun(t, "login", "ana@x.com", "--password", "pw1")
	mustRun(t, "meal", "add", "protein", "huevos", "revueltos", "-c", "200", "--date", "2024-01-01")
	mustRun(t, "measure", "add", "--weight", "68.5", "--date", "2024-01-02")

	db := openTestDB(t, dbPath)
	ana := userByEmail(t, db, "ana@x.com")

	meals, err := db.AllMeals(context.Background(), ana.ID)
	if err != nil {
		t.Fatalf("AllMeals failed: %v", err)
	}
	if len(meals) != 1 || meals[0].Food != "huevos revueltos" || meals[0].Category != models.MealProtein {
		t.Errorf("Unexpected meals: %+v", meals)
	}

	ms, err := db.AllMeasurements(context.Background(), ana.ID)
	if err != nil {
		t.Fatalf("AllMeasurements failed: %v", err)
	}
	if len(ms) != 1 {
		t.Fatalf("Expected 1 measurement, got %d", len(ms))
	}
	if ms[0].Weight != 68.5 || ms[0].Waist != 75 {
		t.Errorf("Unexpected measurement: %+v", ms[0])
	}

	if err := run(t, "measure", "add", "--weight", "900"); !errors.Is(err, models.ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
	if err := run(t, "measure", "add", "--weight", "NaN"); !errors.Is(err, models.ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange for NaN, got %v", err)
	}
	if err := run(t, "meal", "add", "sweets", "pastel"); !errors.Is(err, models.ErrInvalid) {
		t.Errorf("Expected ErrInvalid for unknown category, got %v", err)
	}
}

func TestPhotoCommand(t *testing.T) {
	dbPath := setupTestCLI(t)

	mustRun(t, "register", "Ana", "ana@x.com", "--password", "pw1", "--avatar", "avatar1")
	mustRun(t, "login", "ana@x.com", "--password", "pw1")
	mustRun(t, "photo", "--avatar", "avatar3")

	db := openTestDB(t, dbPath)
	ref := userByEmail(t, db, "ana@x.com").PhotoRef()
	if filepath.Base(ref) != "avatar3.png" {
		t.Errorf("Photo ref = %q, want avatar3.png", ref)
	}

	if err := run(t, "photo", "--avatar", "avatar9"); err == nil {
		t.Error("Expected error for unknown avatar")
	}
}

func TestExportImport(t *testing.T) {
	dbPath := setupTestCLI(t)
	out := filepath.Join(t.TempDir(), "backup.json")

	mustRun(t, "register", "Ana", "ana@x.com", "--password", "pw1")
	mustRun(t, "register", "Beto", "beto@x.com", "--password", "pw2")
	mustRun(t, "login", "ana@x.com", "--password", "pw1")
	mustRun(t, "workout", "add", "Fuerza", "-d", "45", "--date", "2024-02-01")
	mustRun(t, "meal", "add", "dairy", "yogur", "--date", "2024-02-01")
	mustRun(t, "export", "json", "-o", out)

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(raw), `"2024-02-01"`) {
		t.Errorf("Expected dates in export: %s", raw)
	}

	mustRun(t, "import", out, "--user", "beto@x.com")

	db := openTestDB(t, dbPath)
	beto := userByEmail(t, db, "beto@x.com")
	workouts, _ := db.AllWorkouts(context.Background(), beto.ID)
	meals, _ := db.AllMeals(context.Background(), beto.ID)
	if len(workouts) != 1 || len(meals) != 1 {
		t.Errorf("Expected imported history for Beto, got %d workouts, %d meals", len(workouts), len(meals))
	}

	md := filepath.Join(t.TempDir(), "log.md")
	mustRun(t, "export", "markdown", "--since", "2024-03-01", "-o", md)
	raw, _ = os.ReadFile(md)
	if strings.Contains(string(raw), "2024-02-01") {
		t.Error("Expected --since to filter older entries")
	}

	if err := run(t, "export", "csv"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestMigrate(t *testing.T) {
	dbPath := setupTestCLI(t)
	ctx := context.Background()

	srcPath := filepath.Join(t.TempDir(), "old.db")
	src, err := storage.Open(ctx, srcPath)
	if err != nil {
		t.Fatalf("Failed to open source: %v", err)
	}
	u := &models.User{Name: "Ana", Email: "ana@x.com", PasswordHash: auth.Hash("pw1")}
	if err := src.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	w := models.NewWorkout(u.ID, models.NewDate(2024, 1, 1), models.WorkoutCardio).WithDuration(30)
	if err := src.InsertWorkout(ctx, w); err != nil {
		t.Fatalf("InsertWorkout failed: %v", err)
	}
	src.Close()

	mustRun(t, "migrate", "--from", srcPath, "--dry-run")
	mustRun(t, "migrate", "--from", srcPath)

	db := openTestDB(t, dbPath)
	ana := userByEmail(t, db, "ana@x.com")
	workouts, _ := db.AllWorkouts(ctx, ana.ID)
	if len(workouts) != 1 {
		t.Errorf("Expected 1 migrated workout, got %d", len(workouts))
	}

	if err := run(t, "migrate", "--from", srcPath); err == nil {
		t.Error("Expected refusal to migrate into a non-empty database")
	}
}
