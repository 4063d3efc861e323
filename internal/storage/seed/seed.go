// Package seed хранит фиксированный снимок каталога. Им засевается таблица
// tires, и он же служит каталогом в памяти, когда БД недоступна.
package seed

import "github.com/BearBump/LlantaBox/internal/models"

const defaultImage = "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400"

var (
	front = "Front"
	rear  = "Rear"
)

var catalog = []models.Tire{
	{ID: "l1", Brand: "Carlisle", Size: "15x6.00-6", Price: 45.99, Image: defaultImage, Description: "Known for turf-friendly treads and durability", Category: models.CategoryLawn, Stock: 15},
	{ID: "l2", Brand: "Carlisle", Size: "20x10.00-8", Price: 65.99, Image: defaultImage, Description: "Known for turf-friendly treads and durability", Category: models.CategoryLawn, Stock: 12},
	{ID: "l3", Brand: "Carlisle", Size: "18x9.50-8", Price: 58.99, Image: defaultImage, Description: "Known for turf-friendly treads and durability", Category: models.CategoryLawn, Stock: 10},
	{ID: "l4", Brand: "Kenda", Size: "13x5.00-6", Price: 38.99, Image: defaultImage, Description: "Affordable and widely available", Category: models.CategoryLawn, Stock: 20},
	{ID: "l5", Brand: "Kenda", Size: "16x6.50-8", Price: 48.99, Image: defaultImage, Description: "Affordable and widely available", Category: models.CategoryLawn, Stock: 18},
	{ID: "l6", Brand: "Kenda", Size: "18x8.50-8", Price: 55.99, Image: defaultImage, Description: "Affordable and widely available", Category: models.CategoryLawn, Stock: 14},
	{ID: "l7", Brand: "MaxAuto", Size: "15x6.00-6", Price: 42.99, Image: defaultImage, Description: "Popular on Amazon, good for replacements", Category: models.CategoryLawn, Stock: 16},
	{ID: "l8", Brand: "MaxAuto", Size: "20x10.00-8", Price: 62.99, Image: defaultImage, Description: "Popular on Amazon, good for replacements", Category: models.CategoryLawn, Stock: 11},
	{ID: "l9", Brand: "Deestone", Size: "13x5.00-6", Price: 35.99, Image: defaultImage, Description: "Budget-friendly, decent for light-duty", Category: models.CategoryLawn, Stock: 22},
	{ID: "l10", Brand: "Deestone", Size: "18x9.50-8", Price: 52.99, Image: defaultImage, Description: "Budget-friendly, decent for light-duty", Category: models.CategoryLawn, Stock: 13},
	{ID: "l11", Brand: "Hi-Run", Size: "16x6.50-8", Price: 46.99, Image: defaultImage, Description: "OEM replacement for many riding mowers", Category: models.CategoryLawn, Stock: 17},
	{ID: "l12", Brand: "Hi-Run", Size: "20x8.00-8", Price: 59.99, Image: defaultImage, Description: "OEM replacement for many riding mowers", Category: models.CategoryLawn, Stock: 9},
	{ID: "l13", Brand: "Wanda", Size: "15x6.00-6", Price: 44.99, Image: defaultImage, Description: "Good grip and value for turf tires", Category: models.CategoryLawn, Stock: 19},
	{ID: "l14", Brand: "Wanda", Size: "18x9.50-8", Price: 56.99, Image: defaultImage, Description: "Good grip and value for turf tires", Category: models.CategoryLawn, Stock: 15},
	{ID: "m1", Brand: "Michelin", Size: "120/70ZR17", Price: 189.99, Image: defaultImage, Description: "Pilot Road series - great all-rounder", Category: models.CategoryMotorcycle, Stock: 8, Position: &front},
	{ID: "m2", Brand: "Michelin", Size: "180/55ZR17", Price: 229.99, Image: defaultImage, Description: "Power series - great all-rounder", Category: models.CategoryMotorcycle, Stock: 7, Position: &rear},
	{ID: "m3", Brand: "Pirelli", Size: "110/70-17", Price: 179.99, Image: defaultImage, Description: "Diablo Rosso - sporty and grippy", Category: models.CategoryMotorcycle, Stock: 10, Position: &front},
	{ID: "m4", Brand: "Pirelli", Size: "160/60-17", Price: 219.99, Image: defaultImage, Description: "Angel GT - sporty and grippy", Category: models.CategoryMotorcycle, Stock: 9, Position: &rear},
	{ID: "m5", Brand: "Dunlop", Size: "100/90-19", Price: 159.99, Image: defaultImage, Description: "OEM on many cruisers and sportbikes", Category: models.CategoryMotorcycle, Stock: 12, Position: &front},
	{ID: "m6", Brand: "Dunlop", Size: "150/80-16", Price: 185.99, Image: defaultImage, Description: "OEM on many cruisers and sportbikes", Category: models.CategoryMotorcycle, Stock: 11, Position: &rear},
	{ID: "m7", Brand: "Metzeler", Size: "120/70ZR17", Price: 195.99, Image: defaultImage, Description: "Sportec series - touring and sport", Category: models.CategoryMotorcycle, Stock: 6, Position: &front},
	{ID: "m8", Brand: "Metzeler", Size: "180/55ZR17", Price: 239.99, Image: defaultImage, Description: "ME series - touring and sport", Category: models.CategoryMotorcycle, Stock: 5, Position: &rear},
	{ID: "m9", Brand: "Shinko", Size: "130/90-16", Price: 119.99, Image: defaultImage, Description: "Budget-friendly, decent performance", Category: models.CategoryMotorcycle, Stock: 15, Position: &rear},
	{ID: "m10", Brand: "Shinko", Size: "170/80-15", Price: 129.99, Image: defaultImage, Description: "Budget-friendly, decent performance", Category: models.CategoryMotorcycle, Stock: 13, Position: &rear},
	{ID: "m11", Brand: "Avon", Size: "90/90-21", Price: 149.99, Image: defaultImage, Description: "Great for cruisers and customs", Category: models.CategoryMotorcycle, Stock: 14, Position: &front},
	{ID: "m12", Brand: "Avon", Size: "150/80-16", Price: 179.99, Image: defaultImage, Description: "Great for cruisers and customs", Category: models.CategoryMotorcycle, Stock: 12, Position: &rear},
}

// Tires возвращает глубокую копию снимка.
func Tires() []*models.Tire {
	out := make([]*models.Tire, 0, len(catalog))
	for i := range catalog {
		t := catalog[i]
		if t.Position != nil {
			p := *t.Position
			t.Position = &p
		}
		out = append(out, &t)
	}
	return out
}
