package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/config"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
)

// Наполняет базу демонстрационными данными для локальной разработки:
// каталог услуг, недельные окна и немного будущих записей
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg, err := config.Load("config.toml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	serviceIDs, err := seedServices(db)
	if err != nil {
		log.Fatalf("seed services: %v", err)
	}
	if err := seedWindows(db); err != nil {
		log.Fatalf("seed windows: %v", err)
	}
	if err := seedAppointments(db, serviceIDs, 40); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

type seedService struct {
	name     string
	duration int
	price    float64
	mode     string
}

func seedServices(db *sql.DB) ([]string, error) {
	services := []seedService{
		{"Primera consulta", 60, 0, "ambas"},
		{"Terapia individual", 60, 45, "ambas"},
		{"Terapia de pareja", 90, 65, "presencial"},
		{"Sesión de seguimiento", 30, 25, "online"},
	}
	log.Printf("seeding %d services", len(services))

	ids := make([]string, 0, len(services))
	for i, s := range services {
		id := uuid.NewString()
		desc := gofakeit.Paragraph(1, 3, 12, " ")
		short := gofakeit.Sentence(8)

		_, err := db.Exec(`
			INSERT INTO services (id, name, description, short_description, duration_minutes, price, mode, is_active, sort_order, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, true, $8, NOW())
		`, id, s.name, desc, short, s.duration, s.price, s.mode, i)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	log.Println("services seeded")
	return ids, nil
}

func seedWindows(db *sql.DB) error {
	type window struct {
		day        int
		start, end string
	}
	// Понедельник-пятница: утро и вечер
	windows := []window{}
	for day := 1; day <= 5; day++ {
		windows = append(windows,
			window{day, "10:00", "14:00"},
			window{day, "16:00", "20:00"},
		)
	}
	log.Printf("seeding %d weekly windows", len(windows))

	for _, w := range windows {
		_, err := db.Exec(`
			INSERT INTO weekly_availability (id, day_of_week, start_time, end_time, is_active)
			VALUES ($1, $2, $3, $4, true)
		`, uuid.NewString(), w.day, w.start+":00", w.end+":00")
		if err != nil {
			return err
		}
	}

	log.Println("weekly windows seeded")
	return nil
}

func seedAppointments(db *sql.DB, serviceIDs []string, count int) error {
	log.Printf("seeding %d appointments", count)

	modalities := []string{"online", "presencial"}
	statuses := []string{"pending", "confirmed", "completed", "cancelled"}
	starts := []int{10 * 60, 11 * 60, 12 * 60, 16 * 60, 17 * 60, 18 * 60}

	inserted := 0
	for day := 1; inserted < count; day++ {
		date := time.Now().AddDate(0, 0, day)
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}

		// Не больше двух записей в день, в разных окнах
		for _, startMin := range []int{starts[gofakeit.Number(0, 2)], starts[gofakeit.Number(3, 5)]} {
			if inserted >= count {
				break
			}

			serviceID := serviceIDs[gofakeit.Number(0, len(serviceIDs)-1)]
			var durationMinutes int
			if err := db.QueryRow(`SELECT duration_minutes FROM services WHERE id = $1`, serviceID).Scan(&durationMinutes); err != nil {
				return err
			}

			statusStr := statuses[gofakeit.Number(0, len(statuses)-1)]
			var cancelledAt interface{}
			if statusStr == "cancelled" {
				cancelledAt = time.Now()
			}

			_, err := db.Exec(`
				INSERT INTO appointments (
					id, service_id, appointment_date, start_time, end_time,
					client_name, client_pronouns, client_email, client_phone, client_message,
					modality, status, consent_accepted, cancelled_at, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, true, $13, NOW(), NOW())
			`,
				uuid.NewString(), serviceID, date.Format(domain.DateFormat),
				minutesToTime(startMin), minutesToTime(startMin+durationMinutes),
				gofakeit.Name(), gofakeit.RandomString([]string{"ella", "él", "elle"}),
				gofakeit.Email(), gofakeit.Phone(), gofakeit.Sentence(12),
				modalities[gofakeit.Number(0, len(modalities)-1)], statusStr, cancelledAt,
			)
			if err != nil {
				return err
			}
			inserted++
		}
	}

	log.Println("appointments seeded")
	return nil
}

func minutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}
