package memcatalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"storefront-service/internal/core/domain"
)

var (
	fakeConditions   = []string{"New", "Used", "Certified"}
	fakeDriveTypes   = []string{"AWD", "FWD", "RWD", "4WD"}
	fakeSellerTypes  = []string{"Dealer", "Private Seller"}
	fakeTrims        = []string{"Base", "LE", "XLE", "Sport", "Limited", "Touring", "EX-L"}
	fakeBaseListedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
)

// GenerateInventory builds a random but reproducible inventory: the same
// faker seed always yields the same items and dealers.
func GenerateInventory(f *gofakeit.Faker, items, dealers int) Fixture {
	if dealers < 1 {
		dealers = 1
	}
	fx := Fixture{
		Items:   make([]domain.ItemSummary, 0, items),
		Dealers: make([]domain.Dealer, 0, dealers),
	}

	for i := 0; i < dealers; i++ {
		fx.Dealers = append(fx.Dealers, domain.Dealer{
			ID:      fmt.Sprintf("D-%03d", i+1),
			Name:    f.Company() + " Motors",
			City:    f.City(),
			State:   f.StateAbr(),
			Phone:   f.Phone(),
			Website: f.URL(),
			Rating:  f.Float64Range(2.5, 5),
		})
	}

	for i := 0; i < items; i++ {
		dealer := fx.Dealers[f.IntRange(0, len(fx.Dealers)-1)]
		year := f.IntRange(2008, 2025)
		price := float64(f.IntRange(40, 900)) * 100
		item := domain.ItemSummary{
			ID:             fmt.Sprintf("V-%05d", i+1),
			VIN:            f.LetterN(17),
			Year:           year,
			Make:           f.CarMaker(),
			Model:          f.CarModel(),
			Trim:           f.RandomString(fakeTrims),
			Condition:      f.RandomString(fakeConditions),
			BodyType:       f.CarType(),
			DriveType:      f.RandomString(fakeDriveTypes),
			Transmission:   f.CarTransmissionType(),
			FuelType:       f.CarFuelType(),
			ExteriorColor:  f.SafeColor(),
			InteriorColor:  f.SafeColor(),
			Mileage:        f.IntRange(0, 180000),
			Price:          price,
			MonthlyPayment: float64(int(price/60*100)) / 100,
			SellerType:     f.RandomString(fakeSellerTypes),
			City:           dealer.City,
			State:          dealer.State,
			ListedAt:       fakeBaseListedAt.Add(time.Duration(f.IntRange(0, 300*24)) * time.Hour),
		}
		if item.SellerType == "Dealer" {
			item.DealerID = dealer.ID
			item.DealerName = dealer.Name
		}
		item.Title = fmt.Sprintf("%d %s %s %s", item.Year, item.Make, item.Model, item.Trim)
		fx.Items = append(fx.Items, item)
	}

	return fx
}

// JSON renders the fixture in the layout LoadFile reads.
func (fx Fixture) JSON() ([]byte, error) {
	return json.MarshalIndent(fx, "", "  ")
}
