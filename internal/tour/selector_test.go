package tour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/trip-dialogue-engine/internal/lexicon"
	"github.com/capitalize-ai/trip-dialogue-engine/internal/model"
)

func newSelector() *Selector {
	return NewSelector(lexicon.NewStatic())
}

func TestSelectTier(t *testing.T) {
	s := newSelector()

	tests := []struct {
		reply string
		key   string
	}{
		{"classic please", "classic"},
		{"the Grand one", "grand"},
		{"express", "express"},
		{"I have 12 days", "classic"},
		{"10", "classic"},
		{"about 15 days", "grand"},
		{"8 days", "express"},
		{"I want to see everything", "grand"},
		{"something quick", "express"},
	}
	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			tier, ok := s.SelectTier(tt.reply)
			require.True(t, ok)
			assert.Equal(t, tt.key, tier.Key)
		})
	}
}

func TestSelectTier_UnrecognizedReply(t *testing.T) {
	s := newSelector()

	_, ok := s.SelectTier("whatever you think is best")

	assert.False(t, ok)
	assert.Contains(t, OptionsPrompt(), "Classic")
	assert.Contains(t, OptionsPrompt(), "Grand")
	assert.Contains(t, OptionsPrompt(), "Express")
}

func TestBuildTourPlan_Classic(t *testing.T) {
	s := newSelector()
	italy, ok := lexicon.NewStatic().Country("italy")
	require.True(t, ok)
	tier, _ := s.SelectTier("classic")

	plan := s.BuildTourPlan(italy, tier)

	require.Len(t, plan.Cities, 4)
	assert.Equal(t, "Rome", plan.Cities[0].Name)
	nights := []int{}
	for _, c := range plan.Cities {
		nights = append(nights, c.Nights)
		assert.Equal(t, "Italy", c.Country)
	}
	assert.Equal(t, []int{3, 3, 3, 2}, nights)
	assert.Equal(t, 12, plan.Route.TotalDays)
	assert.Equal(t, model.RouteCircular, plan.Route.RouteType)
	assert.Equal(t, "classic", plan.TourTier)

	// Same-country hops go by rail.
	require.Len(t, plan.Transport, 3)
	for _, leg := range plan.Transport {
		assert.Equal(t, "rail", leg.Mode)
	}
}

func TestBuildTourPlan_GrandKeepsEveryCity(t *testing.T) {
	s := newSelector()
	italy, _ := lexicon.NewStatic().Country("italy")
	tier, _ := s.SelectTier("grand")

	plan := s.BuildTourPlan(italy, tier)

	assert.Len(t, plan.Cities, len(italy.SuggestedCities))
	assert.Equal(t, 3, plan.Cities[0].Nights)
	assert.Equal(t, 3, plan.Cities[1].Nights)
	assert.Equal(t, 2, plan.Cities[2].Nights)
	assert.Equal(t, 18, plan.Route.TotalDays)
}

func TestBuildTourPlan_ExpressIsLinear(t *testing.T) {
	s := newSelector()
	italy, _ := lexicon.NewStatic().Country("italy")
	tier, _ := s.SelectTier("express")

	plan := s.BuildTourPlan(italy, tier)

	assert.Len(t, plan.Cities, 3)
	assert.Equal(t, 8, plan.Route.TotalDays)
	assert.Equal(t, model.RouteLinear, plan.Route.RouteType)
}

func TestBuildMultiCityPlan(t *testing.T) {
	s := newSelector()

	plan := s.BuildMultiCityPlan([]string{"London", "Paris", "Rome"})

	require.Len(t, plan.Cities, 3)
	assert.Equal(t, 3, plan.Cities[0].Nights)
	assert.Equal(t, 2, plan.Cities[1].Nights)
	assert.Equal(t, 2, plan.Cities[2].Nights)
	assert.Equal(t, []string{"London", "Paris", "Rome"}, plan.Route.Sequence)
	assert.Equal(t, 8, plan.Route.TotalDays)
	assert.Equal(t, model.RouteLinear, plan.Route.RouteType)
	assert.False(t, plan.Confirmed)

	// Cross-border hops go by flight.
	require.Len(t, plan.Transport, 2)
	assert.Equal(t, "flight", plan.Transport[0].Mode)
	assert.Equal(t, "flight", plan.Transport[1].Mode)
}

func TestDescribe(t *testing.T) {
	s := newSelector()
	plan := s.BuildMultiCityPlan([]string{"London", "Paris"})

	desc := Describe(plan)

	assert.Contains(t, desc, "London (3 nights)")
	assert.Contains(t, desc, "Paris (2 nights)")
	assert.Contains(t, desc, "6 days total")
}
