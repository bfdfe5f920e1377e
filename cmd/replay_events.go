package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/mvdti/dashboard-service/internal/config"
	"github.com/mvdti/dashboard-service/internal/database"
	"github.com/mvdti/dashboard-service/internal/kafka"
	"github.com/mvdti/dashboard-service/internal/logging"
	"github.com/mvdti/dashboard-service/internal/model"
	"github.com/spf13/cobra"
)

var replayEventsCmd = &cobra.Command{
	Use:   "replay-events",
	Short: "Republish all tickets as ticket.snapshot Kafka events (warms downstream consumers)",
	RunE:  runReplayEvents,
}

func init() {
	rootCmd.AddCommand(replayEventsCmd)
}

func runReplayEvents(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(cfg.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS not set")
	}
	conn, err := database.Open(cfg.DSN())
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}

	var tickets []model.Ticket
	if err := conn.Find(&tickets).Error; err != nil {
		return fmt.Errorf("list tickets: %w", err)
	}
	logging.Infof("replay-events: found %d tickets", len(tickets))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicEvent)
	defer producer.Close()
	for i := range tickets {
		t := &tickets[i]
		producer.ProduceEvent(ctx, kafka.EventTicketSnapshot, map[string]interface{}{
			"id_ticket":     t.IDTicket,
			"category_name": t.CategoryName,
			"status_name":   t.StatusName,
			"site_name":     t.SiteName,
			"ticket_title":  t.TicketTitle,
			"staff_asigned": t.StaffAsigned,
		})
		if (i+1)%50 == 0 || i == len(tickets)-1 {
			logging.Infof("replay-events: sent %d/%d", i+1, len(tickets))
		}
	}
	logging.Infof("replay-events: done, sent %d events", len(tickets))
	return nil
}
