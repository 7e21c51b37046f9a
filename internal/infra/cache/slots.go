package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// SlotCache кэш сгенерированных списков слотов поверх Redis
// Ключ — дата и услуга; TTL короткий: кэш лишь гасит повторные обращения
// календаря, источником истины остаётся БД.
// Все ошибки Redis деградируют в cache miss: календарь работает и без кэша
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// New создает кэш слотов и проверяет соединение с Redis
func New(ctx context.Context, addr, password string, db int, ttl time.Duration, log Logger) (*SlotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}

	return &SlotCache{client: client, ttl: ttl, log: log}, nil
}

// Close закрывает соединение с Redis
func (c *SlotCache) Close() error {
	return c.client.Close()
}

// GetSlots возвращает закэшированный список слотов для даты и услуги
// Второй результат false означает cache miss (или недоступный Redis)
func (c *SlotCache) GetSlots(ctx context.Context, date time.Time, serviceID string) ([]domain.Slot, bool) {
	key := slotsKey(date, serviceID)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("SlotCache: get %s failed: %v", key, err)
		return nil, false
	}

	var slots []domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.log.Warn("SlotCache: unmarshal %s failed: %v", key, err)
		return nil, false
	}

	c.log.Debug("SlotCache: hit %s (%d slots)", key, len(slots))
	return slots, true
}

// SetSlots кэширует список слотов для даты и услуги
func (c *SlotCache) SetSlots(ctx context.Context, date time.Time, serviceID string, slots []domain.Slot) {
	key := slotsKey(date, serviceID)

	raw, err := json.Marshal(slots)
	if err != nil {
		c.log.Warn("SlotCache: marshal %s failed: %v", key, err)
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("SlotCache: set %s failed: %v", key, err)
	}
}

// InvalidateDate удаляет кэш слотов всех услуг на дату
// Вызывается после каждой мутации, влияющей на занятость этой даты
func (c *SlotCache) InvalidateDate(ctx context.Context, date time.Time) {
	pattern := fmt.Sprintf("slots:%s:*", date.Format(domain.DateFormat))

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("SlotCache: del %s failed: %v", iter.Val(), err)
		}
	}

	if err := iter.Err(); err != nil {
		c.log.Warn("SlotCache: scan %s failed: %v", pattern, err)
	}
}

// InvalidateAll удаляет весь кэш слотов (изменение еженедельного расписания
// затрагивает все будущие даты этого дня недели)
func (c *SlotCache) InvalidateAll(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, "slots:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("SlotCache: del %s failed: %v", iter.Val(), err)
		}
	}

	if err := iter.Err(); err != nil {
		c.log.Warn("SlotCache: scan slots:* failed: %v", err)
	}
}

func slotsKey(date time.Time, serviceID string) string {
	return fmt.Sprintf("slots:%s:%s", date.Format(domain.DateFormat), serviceID)
}
