// Command dbview prints the workflow store as formatted tables: runs,
// staging questions/answers with approval state and tags, and the
// published rows. Read only; intended for local inspection.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quizstage/quizstage-backend/internal/config"
	"github.com/quizstage/quizstage-backend/internal/domain"
)

func main() {
	runID := flag.String("run", "", "limit output to one run id")
	flag.Parse()

	config.LoadDotEnv()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}

	cfg, err := config.Load(fmt.Sprintf("configs/config.%s.yaml", env))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("DATABASE RECORDS VIEWER")
	fmt.Printf("Database: %s (%s)\n", cfg.Database.DSN, cfg.Database.Driver)
	fmt.Println(strings.Repeat("=", 80))

	printRuns(db, *runID)
	printStagingQuestions(db, *runID)
	printStagingAnswers(db, *runID)
	printTags(db)
	printPublishedQuestions(db, *runID)
	printPublishedAnswers(db, *runID)

	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("END OF DATABASE VIEW")
	fmt.Println(strings.Repeat("=", 80) + "\n")
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	switch cfg.Database.Driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.Database.DSN), gormCfg)
	case "mysql":
		return gorm.Open(mysql.Open(cfg.Database.DSN), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func header(name string, count int) {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Printf("TABLE: %s (%d record(s))\n", strings.ToUpper(name), count)
	fmt.Println(strings.Repeat("=", 80))
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02 15:04:05")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func tagNames(tags []domain.Tag) string {
	if len(tags) == 0 {
		return "-"
	}
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return strings.Join(names, ",")
}

func scoped(db *gorm.DB, runID string) *gorm.DB {
	if runID != "" {
		return db.Where("run_id = ?", runID)
	}
	return db
}

func printRuns(db *gorm.DB, runID string) {
	var runs []domain.Run
	query := db.Order("created_at")
	if runID != "" {
		query = query.Where("id = ?", runID)
	}
	if err := query.Find(&runs).Error; err != nil {
		fmt.Printf("\nError viewing runs: %v\n", err)
		return
	}

	header("runs", len(runs))
	for _, run := range runs {
		fmt.Printf("%s | %-30s | synced %-19s | staged %-19s\n",
			run.ID, truncate(run.Summary, 30),
			formatTime(run.LastSyncAt), formatTime(run.LastStagingChangeAt))
	}
	if len(runs) == 0 {
		fmt.Println("(No records)")
	}
}

func printStagingQuestions(db *gorm.DB, runID string) {
	var questions []domain.StagingQuestion
	if err := scoped(db, runID).Preload("Tags").Order("id").Find(&questions).Error; err != nil {
		fmt.Printf("\nError viewing staging_questions: %v\n", err)
		return
	}

	header("staging_questions", len(questions))
	for _, q := range questions {
		fmt.Printf("%4d | %-8s | %-40s | tags: %s\n",
			q.ID, q.Approval, truncate(q.QuestionText, 40), tagNames(q.Tags))
	}
	if len(questions) == 0 {
		fmt.Println("(No records)")
	}
}

func printStagingAnswers(db *gorm.DB, runID string) {
	var answers []domain.StagingAnswer
	if err := scoped(db, runID).Order("id").Find(&answers).Error; err != nil {
		fmt.Printf("\nError viewing staging_answers: %v\n", err)
		return
	}

	header("staging_answers", len(answers))
	for _, a := range answers {
		fmt.Printf("%4d | q=%4d | %-8s | %s\n",
			a.ID, a.QuestionID, a.Approval, truncate(a.AnswerText, 45))
	}
	if len(answers) == 0 {
		fmt.Println("(No records)")
	}
}

func printTags(db *gorm.DB) {
	var tags []domain.Tag
	if err := db.Order("name").Find(&tags).Error; err != nil {
		fmt.Printf("\nError viewing tags: %v\n", err)
		return
	}

	header("tags", len(tags))
	for _, tag := range tags {
		fmt.Printf("%4d | %s\n", tag.ID, tag.Name)
	}
	if len(tags) == 0 {
		fmt.Println("(No records)")
	}
}

func printPublishedQuestions(db *gorm.DB, runID string) {
	var questions []domain.PublishedQuestion
	if err := scoped(db, runID).Preload("Tags").Order("id").Find(&questions).Error; err != nil {
		fmt.Printf("\nError viewing published_questions: %v\n", err)
		return
	}

	header("published_questions", len(questions))
	for _, q := range questions {
		staging := "NULL"
		if q.StagingID != nil {
			staging = fmt.Sprintf("%d", *q.StagingID)
		}
		fmt.Printf("%4d | staging=%-5s | answered=%-5t | %-35s | tags: %s\n",
			q.ID, staging, q.HasApprovedAnswer, truncate(q.QuestionText, 35), tagNames(q.Tags))
	}
	if len(questions) == 0 {
		fmt.Println("(No records)")
	}
}

func printPublishedAnswers(db *gorm.DB, runID string) {
	var answers []domain.PublishedAnswer
	if err := scoped(db, runID).Order("id").Find(&answers).Error; err != nil {
		fmt.Printf("\nError viewing published_answers: %v\n", err)
		return
	}

	header("published_answers", len(answers))
	for _, a := range answers {
		staging := "NULL"
		if a.StagingID != nil {
			staging = fmt.Sprintf("%d", *a.StagingID)
		}
		fmt.Printf("%4d | q=%4d | staging=%-5s | %s\n",
			a.ID, a.QuestionID, staging, truncate(a.AnswerText, 40))
	}
	if len(answers) == 0 {
		fmt.Println("(No records)")
	}
}
