package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/reviewbot/internal/bot"
	"github.com/example/reviewbot/internal/database"
	"github.com/example/reviewbot/internal/excel"
	"github.com/example/reviewbot/internal/review"
	"github.com/example/reviewbot/internal/scheduler"
	"github.com/joho/godotenv"
)

func main() {
	importFile := flag.String("import", "", "Import a study log (xlsx or csv) and exit")
	importUser := flag.Int64("user", 0, "User ID the imported study log belongs to")
	flag.Parse()

	// Переменные окружения из .env, если файл есть
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Режим импорта: загружаем журнал занятий и выходим
	if *importFile != "" {
		if *importUser == 0 {
			log.Fatal("-user is required with -import")
		}
		if err := database.Connect(); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		config := excel.DefaultImportConfig()
		config.FilePath = *importFile
		result, err := excel.ImportStudyRecords(context.Background(), config, *importUser)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		log.Printf("Import finished: %d processed, %d created, %d skipped",
			result.TotalProcessed, result.Created, result.Skipped)
		for _, e := range result.Errors {
			log.Printf("  %s", e)
		}
		return
	}

	// Создаем канал для сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Создаем контекст с отменой
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Подключаемся к базе данных
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Собираем ядро планировщика повторений
	itemRepo := database.NewReviewItemRepository()
	recordRepo := database.NewStudyRecordRepository()
	service := review.NewService(itemRepo, recordRepo)

	// Создаем бота
	b, err := bot.New(service)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	// Запускаем напоминания о просроченных повторениях
	reminders := scheduler.New(b, database.NewUserRepository(), itemRepo)
	reminders.Start()
	defer reminders.Stop()

	// Канал для ожидания завершения бота
	done := make(chan struct{})

	// Горутина для обработки сигналов
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v\n", sig)
		cancel()

		// Даем время на graceful shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := b.Stop(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}

		close(done)
	}()

	// Запускаем бота
	log.Println("Bot started. Press Ctrl+C to stop.")
	go func() {
		if err := b.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Bot error: %v", err)
		}
	}()

	// Ждем сигнала завершения
	<-done
	log.Println("Bot stopped successfully")
}
