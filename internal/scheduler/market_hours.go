package scheduler

import (
	"time"

	"github.com/rs/zerolog"
)

// TradingWindow is a single trading period within a day
type TradingWindow struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

// ExchangeCalendar defines trading hours and holidays for an exchange
type ExchangeCalendar struct {
	Code           string
	Name           string
	Timezone       *time.Location
	TradingWindows []TradingWindow
	Holidays       []time.Time
}

// MarketHoursService reports whether the tracked exchange is open. The
// price snapshot job uses it to skip quote fetches when the market is
// closed and quotes would just repeat the previous close.
type MarketHoursService struct {
	calendars map[string]*ExchangeCalendar
	log       zerolog.Logger
	now       func() time.Time
}

// NewMarketHoursService creates a new market hours service
func NewMarketHoursService(log zerolog.Logger) *MarketHoursService {
	service := &MarketHoursService{
		calendars: make(map[string]*ExchangeCalendar),
		log:       log.With().Str("component", "market_hours").Logger(),
		now:       time.Now,
	}

	service.initializeCalendars()
	return service
}

// initializeCalendars sets up trading hours and holidays for the
// supported exchanges
func (s *MarketHoursService) initializeCalendars() {
	// India NSE: 09:15-15:30 IST continuous session
	mumbaiLoc, _ := time.LoadLocation("Asia/Kolkata")
	nseHolidays := []time.Time{
		time.Date(2026, 1, 26, 0, 0, 0, 0, mumbaiLoc),  // Republic Day
		time.Date(2026, 3, 14, 0, 0, 0, 0, mumbaiLoc),  // Holi
		time.Date(2026, 3, 30, 0, 0, 0, 0, mumbaiLoc),  // Ram Navami
		time.Date(2026, 4, 2, 0, 0, 0, 0, mumbaiLoc),   // Mahavir Jayanti
		time.Date(2026, 4, 10, 0, 0, 0, 0, mumbaiLoc),  // Good Friday
		time.Date(2026, 4, 14, 0, 0, 0, 0, mumbaiLoc),  // Ambedkar Jayanti
		time.Date(2026, 5, 1, 0, 0, 0, 0, mumbaiLoc),   // Maharashtra Day
		time.Date(2026, 7, 7, 0, 0, 0, 0, mumbaiLoc),   // Bakri Id
		time.Date(2026, 8, 15, 0, 0, 0, 0, mumbaiLoc),  // Independence Day
		time.Date(2026, 10, 2, 0, 0, 0, 0, mumbaiLoc),  // Gandhi Jayanti
		time.Date(2026, 10, 23, 0, 0, 0, 0, mumbaiLoc), // Dussehra
		time.Date(2026, 11, 11, 0, 0, 0, 0, mumbaiLoc), // Diwali
		time.Date(2026, 11, 12, 0, 0, 0, 0, mumbaiLoc), // Diwali (Balipratipada)
		time.Date(2026, 11, 25, 0, 0, 0, 0, mumbaiLoc), // Gurunanak Jayanti
		time.Date(2026, 12, 25, 0, 0, 0, 0, mumbaiLoc), // Christmas
	}

	s.calendars["NSE"] = &ExchangeCalendar{
		Code:     "XNSE",
		Name:     "NSE",
		Timezone: mumbaiLoc,
		TradingWindows: []TradingWindow{
			{OpenHour: 9, OpenMinute: 15, CloseHour: 15, CloseMinute: 30},
		},
		Holidays: nseHolidays,
	}

	// BSE shares the NSE session and holiday calendar
	s.calendars["BSE"] = &ExchangeCalendar{
		Code:           "XBOM",
		Name:           "BSE",
		Timezone:       mumbaiLoc,
		TradingWindows: s.calendars["NSE"].TradingWindows,
		Holidays:       nseHolidays,
	}

	s.log.Info().Int("calendars", len(s.calendars)).Msg("Market hours calendars initialized")
}

// GetCalendar returns the calendar for an exchange name
func (s *MarketHoursService) GetCalendar(exchangeName string) *ExchangeCalendar {
	if cal, ok := s.calendars[exchangeName]; ok {
		return cal
	}

	s.log.Warn().Str("exchange", exchangeName).Msg("Unknown exchange, defaulting to NSE")
	return s.calendars["NSE"]
}

// IsMarketOpen checks if an exchange is currently in a trading session
func (s *MarketHoursService) IsMarketOpen(exchangeName string) bool {
	cal := s.GetCalendar(exchangeName)
	now := s.now().In(cal.Timezone)

	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, cal.Timezone)
	for _, holiday := range cal.Holidays {
		if holiday.Equal(today) {
			return false
		}
	}

	currentMinutes := now.Hour()*60 + now.Minute()
	for _, window := range cal.TradingWindows {
		openMinutes := window.OpenHour*60 + window.OpenMinute
		closeMinutes := window.CloseHour*60 + window.CloseMinute

		if currentMinutes >= openMinutes && currentMinutes < closeMinutes {
			return true
		}
	}

	return false
}
