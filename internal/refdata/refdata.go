// Package refdata exposes the static state and city lookup used by the
// address fields of the user form.
package refdata

// Provider is the read-only reference data consumed by the form and the
// validator.
type Provider interface {
	ListStates() []string
	CitiesOf(state string) []string
}

type entry struct {
	State  string
	Cities []string
}

// statesAndCities keeps insertion order; ListStates relies on it.
var statesAndCities = []entry{
	{"Karnataka", []string{"Bangalore", "Mysore", "Mangalore", "Hubli", "Belgaum"}},
	{"Maharashtra", []string{"Mumbai", "Pune", "Nagpur", "Nashik", "Aurangabad"}},
	{"Tamil Nadu", []string{"Chennai", "Coimbatore", "Madurai", "Tiruchirappalli", "Salem"}},
	{"West Bengal", []string{"Kolkata", "Howrah", "Durgapur", "Asansol", "Siliguri"}},
	{"Gujarat", []string{"Ahmedabad", "Surat", "Vadodara", "Rajkot", "Bhavnagar"}},
	{"Telangana", []string{"Hyderabad", "Warangal", "Nizamabad", "Khammam", "Karimnagar"}},
	{"Rajasthan", []string{"Jaipur", "Jodhpur", "Udaipur", "Kota", "Ajmer"}},
	{"Kerala", []string{"Thiruvananthapuram", "Kochi", "Kozhikode", "Thrissur", "Kollam"}},
	{"Delhi", []string{"New Delhi", "North Delhi", "South Delhi", "East Delhi", "West Delhi"}},
	{"Uttar Pradesh", []string{"Lucknow", "Kanpur", "Agra", "Varanasi", "Meerut"}},
}

// Static is the built-in Provider backed by the table above.
type Static struct {
	order  []string
	cities map[string][]string
}

// NewStatic builds the default provider.
func NewStatic() *Static {
	return newStatic(statesAndCities)
}

func newStatic(entries []entry) *Static {
	s := &Static{
		order:  make([]string, 0, len(entries)),
		cities: make(map[string][]string, len(entries)),
	}
	for _, e := range entries {
		s.order = append(s.order, e.State)
		s.cities[e.State] = e.Cities
	}
	return s
}

// ListStates returns the state names in table order.
func (s *Static) ListStates() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// CitiesOf returns the cities of state, or an empty slice when the state is
// unknown or empty.
func (s *Static) CitiesOf(state string) []string {
	cities := s.cities[state]
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}

// HasState reports whether state is in the table.
func (s *Static) HasState(state string) bool {
	_, ok := s.cities[state]
	return ok
}

// HasCity reports whether city belongs to state.
func HasCity(p Provider, state, city string) bool {
	for _, c := range p.CitiesOf(state) {
		if c == city {
			return true
		}
	}
	return false
}
