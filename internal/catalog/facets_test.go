package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/pitch-reservation/internal/model"
)

func TestBuildFacets(t *testing.T) {
	records := []model.Pitch{
		{ID: "1", City: "İzmir", District: "Konak", Capacity: "10 oyuncu", PitchType: model.PitchOutdoor, Price: 900},
		{ID: "2", City: "Çanakkale", District: "Merkez", Capacity: "8 oyuncu", PitchType: model.PitchIndoor, Price: 450},
		{ID: "3", City: "Ankara", District: "Yenimahalle", Capacity: "12 oyuncu", PitchType: model.PitchIndoor, Price: 700},
		{ID: "4", City: "Ankara", District: "Çankaya", Capacity: "10 oyuncu", PitchType: model.PitchOutdoor, Price: 1300},
		{ID: "5", City: "Ankara", District: "Çankaya", Price: 800},
	}
	f := BuildFacets(records)

	assert.Equal(t, []string{"Ankara", "Çanakkale", "İzmir"}, f.Cities)
	assert.Equal(t, []string{"Çankaya", "Yenimahalle"}, f.Districts["Ankara"])
	assert.Equal(t, []string{"Konak"}, f.Districts["İzmir"])
	assert.Equal(t, []string{"8 oyuncu", "10 oyuncu", "12 oyuncu"}, f.Capacities)
	assert.Equal(t, []model.PitchType{model.PitchIndoor, model.PitchOutdoor}, f.PitchTypes)
	assert.Equal(t, 450, f.MinPrice)
	assert.Equal(t, 1300, f.MaxPrice)
}

func TestBuildFacets_Empty(t *testing.T) {
	f := BuildFacets(nil)
	assert.NotNil(t, f.Cities)
	assert.Empty(t, f.Cities)
	assert.Zero(t, f.MinPrice)
	assert.Zero(t, f.MaxPrice)
}

func TestStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   StarRating
	}{
		{rating: 0, want: StarRating{Full: 0, Half: 0, Empty: 5}},
		{rating: 3.2, want: StarRating{Full: 3, Half: 0, Empty: 2}},
		{rating: 3.5, want: StarRating{Full: 3, Half: 1, Empty: 1}},
		{rating: 4.9, want: StarRating{Full: 4, Half: 1, Empty: 0}},
		{rating: 5, want: StarRating{Full: 5, Half: 0, Empty: 0}},
		{rating: 7, want: StarRating{Full: 5, Half: 0, Empty: 0}},
		{rating: -1, want: StarRating{Full: 0, Half: 0, Empty: 5}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stars(tt.rating), "rating %v", tt.rating)
	}
}
