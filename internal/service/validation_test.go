package service

import (
	"context"
	"errors"
	"testing"
)

func TestValidateRegisterInput(t *testing.T) {
	valid := RegisterInput{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Password:    "analytical-engine",
		FullAddress: "12 St James's Square, London",
	}

	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantErr error
	}{
		{"valid", func(in *RegisterInput) {}, nil},
		{"missing first name", func(in *RegisterInput) { in.FirstName = "  " }, ErrMissingField},
		{"missing last name", func(in *RegisterInput) { in.LastName = "" }, ErrMissingField},
		{"missing address", func(in *RegisterInput) { in.FullAddress = "" }, ErrMissingField},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, ErrInvalidEmail},
		{"empty email", func(in *RegisterInput) { in.Email = "" }, ErrInvalidEmail},
		{"short password", func(in *RegisterInput) { in.Password = "1234567" }, ErrWeakPassword},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			input := valid
			test.mutate(&input)

			err := validateRegisterInput(input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestCartAdd_RejectsBadQuantity(t *testing.T) {
	svc := &CartService{}

	for _, qty := range []int{0, -1, -100} {
		err := svc.Add(context.Background(), 1, 1, qty)
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("Add with qty=%d = %v, want ErrInvalidQuantity", qty, err)
		}
	}
}

func TestCreateProduct_ValidationErrors(t *testing.T) {
	svc := &CatalogService{}

	tests := []struct {
		name    string
		input   CreateProductInput
		wantErr error
	}{
		{
			name:    "missing name",
			input:   CreateProductInput{Name: " ", Price: 1, Quantity: 1},
			wantErr: ErrMissingName,
		},
		{
			name:    "negative price",
			input:   CreateProductInput{Name: "thing", Price: -0.01, Quantity: 1},
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "negative stock",
			input:   CreateProductInput{Name: "thing", Price: 1, Quantity: -1},
			wantErr: ErrInvalidStock,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}
