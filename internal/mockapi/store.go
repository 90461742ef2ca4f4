package mockapi

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/carview/internal/carapi"
)

// Car is a stored car as the mock API serves it.
type Car struct {
	ID string `json:"id"`
	carapi.NewCar
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps cars in memory in insertion order. It is safe for concurrent
// use; every read returns copies.
type Store struct {
	mu    sync.RWMutex
	order []string
	cars  map[string]Car
	now   func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{cars: make(map[string]Car), now: time.Now}
}

// List returns every car, oldest first.
func (s *Store) List() []Car {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Car, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.cars[id])
	}
	return out
}

// Get returns the car with id.
func (s *Store) Get(id string) (Car, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	car, ok := s.cars[id]
	return car, ok
}

// Create stores nc under a new id and returns the stored car.
func (s *Store) Create(nc carapi.NewCar) Car {
	s.mu.Lock()
	defer s.mu.Unlock()

	car := Car{ID: uuid.NewString(), NewCar: nc, CreatedAt: s.now().UTC()}
	s.cars[car.ID] = car
	s.order = append(s.order, car.ID)
	return car
}

// Delete removes the car with id and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cars[id]; !ok {
		return false
	}
	delete(s.cars, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of stored cars.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Seed adds a few sample cars.
func (s *Store) Seed() {
	for _, nc := range sampleCars {
		s.Create(nc)
	}
}

var sampleCars = []carapi.NewCar{
	{
		Brand:       "Peugeot",
		Model:       "308",
		Year:        2019,
		Color:       "Gris",
		Price:       14500,
		Mileage:     61000,
		Description: "Première main, carnet d'entretien à jour.",
	},
	{
		Brand:   "Renault",
		Model:   "Clio",
		Year:    2021,
		Color:   "Rouge",
		Price:   15990,
		Mileage: 23500,
	},
	{
		Brand:       "Tesla",
		Model:       "Model 3",
		Year:        2022,
		Color:       "Blanc",
		Price:       38900.5,
		Mileage:     18000,
		Description: "Autopilot, jantes 19 pouces.",
		ImageURL:    "https://images.example.com/cars/tesla-model-3.jpg",
	},
}
