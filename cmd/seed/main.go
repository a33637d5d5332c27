// Команда seed наполняет базу демонстрационными викторинами.
// Запуск: go run ./cmd/seed (использует тот же CONFIG_PATH, что и API).
package main

import (
	"log"
	"os"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/config"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	pgRepo "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/repository/postgres"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/service"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	quizService := service.NewQuizService(pgRepo.NewQuizRepo(db))

	for _, quiz := range demoQuizzes() {
		created, err := quizService.Create(quiz)
		if err != nil {
			log.Printf("Не удалось создать викторину '%s': %v", quiz.Title, err)
			continue
		}
		log.Printf("Создана викторина '%s' (ID: %d, вопросов: %d)",
			created.Title, created.ID, created.QuestionCount())
	}

	log.Println("Демонстрационные данные загружены")
}

func demoQuizzes() []*entity.Quiz {
	return []*entity.Quiz{
		{
			Title:       "General Knowledge",
			Description: "A quick mix of everyday trivia",
			Creator:     "demo",
			IsPublic:    true,
			Questions: []entity.Question{
				{
					Text:          "What is the capital of France?",
					Options:       entity.StringArray{"London", "Berlin", "Paris", "Madrid"},
					CorrectAnswer: "Paris",
				},
				{
					Text:          "Which planet is known as the Red Planet?",
					Options:       entity.StringArray{"Venus", "Mars", "Jupiter", "Saturn"},
					CorrectAnswer: "Mars",
				},
				{
					Text:          "What is the largest ocean on Earth?",
					Options:       entity.StringArray{"Atlantic", "Indian", "Arctic", "Pacific"},
					CorrectAnswer: "Pacific",
				},
				{
					Text:          "How many continents are there?",
					Options:       entity.StringArray{"5", "6", "7", "8"},
					CorrectAnswer: "7",
				},
			},
		},
		{
			Title:       "Science Basics",
			Description: "Elementary science questions",
			Creator:     "demo",
			IsPublic:    true,
			Questions: []entity.Question{
				{
					Text:          "What is the chemical symbol for water?",
					Options:       entity.StringArray{"H2O", "CO2", "O2", "NaCl"},
					CorrectAnswer: "H2O",
				},
				{
					Text:          "What gas do plants absorb from the atmosphere?",
					Options:       entity.StringArray{"Oxygen", "Nitrogen", "Carbon dioxide", "Hydrogen"},
					CorrectAnswer: "Carbon dioxide",
				},
				{
					Text:          "What is the speed of light (approximately)?",
					Options:       entity.StringArray{"300,000 km/s", "150,000 km/s", "500,000 km/s", "1,000,000 km/s"},
					CorrectAnswer: "300,000 km/s",
				},
			},
		},
		{
			Title:       "World History",
			Description: "Key moments in world history",
			Creator:     "demo",
			IsPublic:    true,
			Questions: []entity.Question{
				{
					Text:          "In which year did World War II end?",
					Options:       entity.StringArray{"1943", "1944", "1945", "1946"},
					CorrectAnswer: "1945",
				},
				{
					Text:          "Who was the first President of the United States?",
					Options:       entity.StringArray{"Thomas Jefferson", "George Washington", "Abraham Lincoln", "John Adams"},
					CorrectAnswer: "George Washington",
				},
				{
					Text:          "Which ancient civilization built the pyramids of Giza?",
					Options:       entity.StringArray{"Romans", "Greeks", "Egyptians", "Mayans"},
					CorrectAnswer: "Egyptians",
				},
			},
		},
	}
}
