package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/token"

	_ "github.com/jackc/pgx/v5/stdlib"

	"feedback-service/internal/events"
	"feedback-service/internal/repository"
)

// Worker alerts admin devices when a new feedback submission lands.
type Worker struct {
	natsConn   *nats.Conn
	apnsClient *apns2.Client
	tokens     repository.DeviceTokenRepository
}

func (w *Worker) handleFeedbackReceived(msg *nats.Msg) {
	var event events.FeedbackReceivedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Printf("Error unmarshalling event: %v", err)
		return
	}

	log.Printf("Event received: new feedback %s for site %s", event.SubmissionID, event.SiteID)

	tokens, err := w.tokens.ListAdminTokens(context.Background())
	if err != nil {
		log.Printf("Failed to retrieve admin device tokens: %v", err)
		return
	}

	if len(tokens) == 0 {
		log.Println("No admin device tokens registered. No notifications sent.")
		return
	}

	payload := `{"aps":{"alert":"New canteen feedback just arrived","sound":"default"}}`

	for _, deviceToken := range tokens {
		notification := &apns2.Notification{
			DeviceToken: deviceToken,
			Topic:       os.Getenv("APNS_TOPIC"),
			Payload:     []byte(payload),
		}

		if w.apnsClient == nil {
			log.Printf("SUCCESS (mock): Push notification sent to device %s", deviceToken)
			continue
		}

		res, err := w.apnsClient.Push(notification)
		if err != nil {
			log.Printf("FAILED to send notification: %v", err)
		} else if res.Sent() {
			log.Printf("SUCCESS: Notification sent with APNS ID: %s", res.ApnsID)
		} else {
			log.Printf("FAILED: Notification not sent. Reason: %s", res.Reason)
		}
	}
}

func Start(natsURL string) error {
	authKeyPath := os.Getenv("APNS_AUTH_KEY_PATH")
	keyID := os.Getenv("APNS_KEY_ID")
	teamID := os.Getenv("APNS_TEAM_ID")

	var apnsClient *apns2.Client
	if authKeyPath != "" && authKeyPath[0] != '#' && keyID != "" && teamID != "" {
		log.Println("APNs credentials found, initializing APNs client...")
		authKey, err := token.AuthKeyFromFile(authKeyPath)
		if err != nil {
			return fmt.Errorf("failed to read APNs auth key: %w", err)
		}

		authToken := &token.Token{
			AuthKey: authKey,
			KeyID:   keyID,
			TeamID:  teamID,
		}

		if os.Getenv("APNS_MODE") == "production" {
			apnsClient = apns2.NewTokenClient(authToken).Production()
		} else {
			apnsClient = apns2.NewTokenClient(authToken).Development()
		}
	} else {
		log.Println("APNs credentials not found or invalid. Worker will run in MOCK mode.")
	}

	db, err := connectDB()
	if err != nil {
		return err
	}

	nc, err := nats.Connect(natsURL)
	if err != nil {
		return err
	}

	worker := &Worker{
		natsConn:   nc,
		apnsClient: apnsClient,
		tokens:     repository.NewPostgresDeviceTokenRepository(db),
	}

	_, err = nc.Subscribe(events.SubjectFeedbackReceived, worker.handleFeedbackReceived)
	if err != nil {
		return err
	}

	return nil
}

func connectDB() (*sqlx.DB, error) {
	// Only needed when the worker runs outside Docker.
	godotenv.Load(".env.dev")

	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Notification worker connected to the database.")
	return db, nil
}
