package catalog

import (
	"strconv"

	"github.com/iliyamo/pitch-reservation/internal/model"
)

func ptr(f float64) *float64 { return &f }

func ids(ps []model.Pitch) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

// samplePitches is a small collection covering every filter dimension.
func samplePitches() []model.Pitch {
	return []model.Pitch{
		{ID: "1", Name: "Zafer Spor", City: "İstanbul", District: "Kadıköy", Location: "Moda Cd. 5, Kadıköy, İstanbul",
			Price: 1200, Rating: 4.5, ReviewCount: 120, Capacity: "14 oyuncu", PitchType: model.PitchIndoor,
			CameraSystem: true, ShoeRental: true, Status: model.StatusActive},
		{ID: "2", Name: "Dere Sahası", City: "İstanbul", District: "Beşiktaş", Location: "Barbaros Blv. 10, Beşiktaş, İstanbul",
			Price: 900, Rating: 3.8, ReviewCount: 40, Capacity: "10 oyuncu", PitchType: model.PitchOutdoor,
			CameraSystem: false, ShoeRental: true, Status: model.StatusActive},
		{ID: "3", Name: "Çamlık Arena", City: "Ankara", District: "Çankaya", Location: "Tunalı Hilmi Cd. 3, Çankaya, Ankara",
			Price: 750, Rating: 4.5, ReviewCount: 64, Capacity: "12 oyuncu", PitchType: model.PitchIndoor,
			CameraSystem: true, ShoeRental: false, Status: model.StatusMaintenance},
		{ID: "4", Name: "Cumhuriyet Sahası", City: "istanbul", District: "Kadıköy", Location: "Bağdat Cd. 1, Kadıköy, istanbul",
			Price: 1500, Rating: 4.9, ReviewCount: 310, Capacity: "14 oyuncu", PitchType: model.PitchOutdoor,
			CameraSystem: true, ShoeRental: true, Status: model.StatusActive},
		{ID: "5", Name: "Şehir Stadı", City: "İzmir", District: "Karşıyaka", Location: "Cemal Gürsel Cd. 8, Karşıyaka, İzmir",
			Price: 600, Rating: 3.2, ReviewCount: 12, Capacity: "10 oyuncu", PitchType: model.PitchOutdoor,
			CameraSystem: false, ShoeRental: false, Status: model.StatusInactive},
		{ID: "6", Name: "Sahil Park", City: "İzmir", District: "Konak", Location: "Kordon 2, Konak, İzmir",
			Price: 900, Rating: 0, ReviewCount: 0, Capacity: "", PitchType: model.PitchIndoor,
			CameraSystem: false, ShoeRental: true, Status: model.StatusActive},
	}
}

// pricedPitches builds n pitches whose prices are a permutation of
// 10, 20, ..., n*10 so that the cheapest k are easy to predict.
func pricedPitches(n int) []model.Pitch {
	out := make([]model.Pitch, n)
	for i := 0; i < n; i++ {
		// 7 is coprime with every n used in the tests, giving a permutation
		price := ((i*7)%n + 1) * 10
		out[i] = model.Pitch{ID: "p" + strconv.Itoa(i), Name: "Saha " + strconv.Itoa(i), Price: price}
	}
	return out
}
