package carapi

import (
	"encoding/json"
	"testing"
)

func TestCar_UnmarshalIsLenient(t *testing.T) {
	var car Car
	body := `{"id":42,"brand":"Volvo","model":"240","year":"1988","price":"abc","mileage":12000.0,"imageUrl":"http://img/1.png","color":null}`
	if err := json.Unmarshal([]byte(body), &car); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if car.ID != "42" {
		t.Fatalf("ID = %q, want 42", car.ID)
	}
	if car.Year == nil || *car.Year != 1988 {
		t.Fatalf("Year = %v, want 1988", car.Year)
	}
	if car.Price != nil {
		t.Fatalf("Price = %v, want nil for non-numeric text", *car.Price)
	}
	if car.Mileage == nil || *car.Mileage != 12000 {
		t.Fatalf("Mileage = %v, want 12000", car.Mileage)
	}
	if car.ImageURL != "http://img/1.png" {
		t.Fatalf("ImageURL = %q, want imageUrl alias", car.ImageURL)
	}
	if car.Color != "" {
		t.Fatalf("Color = %q, want empty", car.Color)
	}
}

func TestCar_UnmarshalPrefersSnakeCaseImage(t *testing.T) {
	var car Car
	if err := json.Unmarshal([]byte(`{"image_url":"a","imageUrl":"b"}`), &car); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if car.ImageURL != "a" {
		t.Fatalf("ImageURL = %q, want a", car.ImageURL)
	}
}

func TestCar_UnmarshalRejectsNonObject(t *testing.T) {
	var car Car
	if err := json.Unmarshal([]byte(`[1,2]`), &car); err == nil {
		t.Fatalf("Unmarshal of array returned nil error")
	}
}
