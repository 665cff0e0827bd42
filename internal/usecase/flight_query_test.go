package usecase

import (
	"context"
	"testing"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAirlineRepo map[string]*entity.Airline

func (r fakeAirlineRepo) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	a, ok := r[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func TestSearchRequiresValidDate(t *testing.T) {
	q := NewFlightQuery(newFakeFlightRepo(), nil, logger.NewNop())

	_, err := q.Search(context.Background(), SearchInput{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = q.Search(context.Background(), SearchInput{Date: "01/02/2024"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSearchTrimsAndResolvesAirline(t *testing.T) {
	flights := newFakeFlightRepo()
	airlines := fakeAirlineRepo{"AI": {Code: "AI", Name: "Air India"}}
	q := NewFlightQuery(flights, airlines, logger.NewNop())

	_, err := q.Search(context.Background(), SearchInput{Date: " 2024-01-01 ", FlightNumber: " AI101 ", Airline: "AI"})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), flights.lastQuery.Date)
	assert.Equal(t, "AI101", flights.lastQuery.FlightNumber)
	assert.Equal(t, "AI", flights.lastQuery.Airline)
	assert.Equal(t, "Air India", flights.lastQuery.AirlineName)

	_, err = q.Search(context.Background(), SearchInput{Date: "2024-01-01", Airline: "IndiGo"})
	require.NoError(t, err)
	assert.Equal(t, "IndiGo", flights.lastQuery.Airline)
	assert.Empty(t, flights.lastQuery.AirlineName)
}

func TestUserFlights(t *testing.T) {
	flights := newFakeFlightRepo()
	flights.byEmail["a@example.com"] = []*entity.Flight{
		{FlightNumber: "AI101", Status: "Delayed", Gate: "B2", Arrival: "DEL", Delay: "30", Cancellation: false},
	}
	q := NewFlightQuery(flights, nil, logger.NewNop())

	views, err := q.UserFlights(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, []entity.FlightStatusView{
		{FlightNumber: "AI101", Status: "Delayed", Gate: "B2", Arrival: "DEL", Delay: "30"},
	}, views)

	views, err = q.UserFlights(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, views)
}
