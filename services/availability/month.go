package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"trimly/models"
	"trimly/utils"

	"go.uber.org/zap"
)

const monthCacheTTL = 60 * time.Second

// MonthAvailability classifies every day of the month from real slot
// occupancy: configured capacity minus booked appointments. Month is
// 1-based. Results are cached briefly; a booking landing inside the TTL
// window surfaces at the next refresh.
func (e *DefaultEngine) MonthAvailability(ctx context.Context, serviceID string, year, month int) (*models.MonthAvailability, error) {
	if year < 1 || month < 1 || month > 12 {
		return nil, utils.InvalidArgumentError{Msg: "year and month must name a valid calendar month"}
	}

	cacheKey := fmt.Sprintf("monthavail:%s:%04d-%02d", serviceID, year, month)
	if cached := e.cachedMonth(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	svc, err := e.Services.GetByID(serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, utils.NotFoundError{Resource: "service", ID: serviceID}
	}

	// Configured slot capacity per day of the requested month.
	capacity := map[int]int{}
	for _, block := range svc.StylistBlocks {
		for _, tb := range block.TimeBlocks {
			day, ok := dayInMonth(tb.Date, year, month)
			if !ok {
				continue
			}
			capacity[day] += len(tb.Times)
		}
	}

	now := e.now()
	totalDays := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
	result := &models.MonthAvailability{Year: year, Month: month, Days: make([]models.DayAvailability, 0, totalDays)}

	for d := 1; d <= totalDays; d++ {
		endOfDay := time.Date(year, time.Month(month), d, 23, 59, 59, 0, time.Local)
		status := models.DayAvailable
		switch {
		case endOfDay.Before(now):
			status = models.DayPast
		default:
			dateStr := fmt.Sprintf("%04d-%02d-%02d", year, month, d)
			booked, err := e.Appointments.CountActiveByServiceDate(serviceID, dateStr)
			if err != nil {
				return nil, err
			}
			remaining := capacity[d] - booked
			switch {
			case remaining <= 0:
				status = models.DayFullyBooked
			case remaining <= e.GoingFastRemaining:
				status = models.DayGoingFast
			}
		}
		result.Days = append(result.Days, models.DayAvailability{Day: d, Status: status})
	}

	e.storeMonth(ctx, cacheKey, result)
	return result, nil
}

// dayInMonth parses a stored date string and reports its day-of-month when
// it falls inside the requested month.
func dayInMonth(date string, year, month int) (int, bool) {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return 0, false
	}
	if t.Year() != year || int(t.Month()) != month {
		return 0, false
	}
	return t.Day(), true
}

func (e *DefaultEngine) cachedMonth(ctx context.Context, key string) *models.MonthAvailability {
	if e.Cache == nil {
		return nil
	}
	raw, err := e.Cache.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var cached models.MonthAvailability
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil
	}
	return &cached
}

func (e *DefaultEngine) storeMonth(ctx context.Context, key string, m *models.MonthAvailability) {
	if e.Cache == nil {
		return
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := e.Cache.Set(ctx, key, raw, monthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache month availability", zap.String("key", key), zap.Error(err))
	}
}
