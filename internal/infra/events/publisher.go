package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	DriverGoChannel = "gochannel"
	DriverRedis     = "redis"
)

var (
	ErrUnknownDriver = errors.New("events: unknown driver")
	ErrRedisRequired = errors.New("events: redis client is required for redis driver")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewMessagePublisher создает транспорт событий по драйверу из конфигурации
func NewMessagePublisher(driver string, rdb *redis.Client, logger watermill.LoggerAdapter) (message.Publisher, error) {
	switch driver {
	case DriverGoChannel, "":
		return gochannel.NewGoChannel(gochannel.Config{}, logger), nil
	case DriverRedis:
		if rdb == nil {
			return nil, ErrRedisRequired
		}
		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: rdb,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("creating redis stream publisher: %w", err)
		}
		return publisher, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// NewEventBus event bus с топиком по имени структуры события
func NewEventBus(pub message.Publisher, logger watermill.LoggerAdapter) (*cqrs.EventBus, error) {
	return cqrs.NewEventBusWithConfig(pub, cqrs.EventBusConfig{
		GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
			return params.EventName, nil
		},
		Marshaler: cqrs.JSONMarshaler{
			GenerateName: cqrs.StructName,
		},
		Logger: logger,
	})
}

// Publisher публикует события жизненного цикла бронирования
// Ошибки публикации только логируются: событие отправляется после коммита
type Publisher struct {
	bus *cqrs.EventBus
	log Logger
	now func() time.Time
}

func NewPublisher(bus *cqrs.EventBus, log Logger) *Publisher {
	return &Publisher{
		bus: bus,
		log: log,
		now: time.Now,
	}
}

func (p *Publisher) BookingCreated(ctx context.Context, b *domain.Booking) {
	p.publish(ctx, BookingCreated{
		Header:     newHeader(p.now()),
		Booking:    refOf(b),
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		TotalPrice: money(b.TotalPrice),
		Status:     string(b.Status),
	})
}

func (p *Publisher) BookingStatusChanged(ctx context.Context, b *domain.Booking, from domain.BookingStatus, changedBy string) {
	p.publish(ctx, BookingStatusChanged{
		Header:     newHeader(p.now()),
		Booking:    refOf(b),
		FromStatus: string(from),
		ToStatus:   string(b.Status),
		ChangedBy:  changedBy,
	})
}

func (p *Publisher) BookingCancelled(ctx context.Context, b *domain.Booking, cancelledBy string) {
	event := BookingCancelled{
		Header:      newHeader(p.now()),
		Booking:     refOf(b),
		TotalPrice:  money(b.TotalPrice),
		CancelledBy: cancelledBy,
	}
	if b.RefundAmount != nil {
		event.RefundAmount = money(*b.RefundAmount)
	}
	if b.CancelledAt != nil {
		event.CancelledAt = *b.CancelledAt
	}
	p.publish(ctx, event)
}

func (p *Publisher) BookingExtended(ctx context.Context, b *domain.Booking, previousEnd time.Time, additionalHours int, cost decimal.Decimal) {
	p.publish(ctx, BookingExtended{
		Header:          newHeader(p.now()),
		Booking:         refOf(b),
		PreviousEndTime: previousEnd,
		NewEndTime:      b.EndTime,
		AdditionalHours: additionalHours,
		ExtensionCost:   money(cost),
		TotalPrice:      money(b.TotalPrice),
	})
}

func (p *Publisher) BookingIssueReported(ctx context.Context, b *domain.Booking) {
	event := BookingIssueReported{
		Header:  newHeader(p.now()),
		Booking: refOf(b),
	}
	if b.IssueType != nil {
		event.IssueType = string(*b.IssueType)
	}
	if b.IssueDescription != nil {
		event.Description = *b.IssueDescription
	}
	if b.IssueReportedAt != nil {
		event.ReportedAt = *b.IssueReportedAt
	}
	p.publish(ctx, event)
}

func (p *Publisher) publish(ctx context.Context, event any) {
	if err := p.bus.Publish(ctx, event); err != nil {
		p.log.Error("Events: failed to publish %s: %v", cqrs.StructName(event), err)
		return
	}
	p.log.Info("Events: published %s", cqrs.StructName(event))
}

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyPlaces)
}
