package request

import (
	"time"

	"save-serve/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type CreateDonationRequest struct {
	Title               string    `json:"title" binding:"required,max=200"`
	Description         string    `json:"description" binding:"max=2000"`
	FoodTypes           []string  `json:"food_types" binding:"required,min=1"`
	Portions            int       `json:"portions" binding:"required,min=1,max=100000"`
	WeightKg            float64   `json:"weight_kg" binding:"required,gt=0,lte=10000"`
	Latitude            float64   `json:"latitude" binding:"min=-90,max=90"`
	Longitude           float64   `json:"longitude" binding:"min=-180,max=180"`
	Address             string    `json:"address" binding:"required"`
	PickupStart         time.Time `json:"pickup_start" binding:"required"`
	PickupEnd           time.Time `json:"pickup_end" binding:"required"`
	ImageFileIDs        []string  `json:"image_file_ids" binding:"max=5"`
	SpecialInstructions string    `json:"special_instructions" binding:"max=500"`
}

func (r *CreateDonationRequest) ToCommand() (commands.CreateDonationRequest, error) {
	var cmd commands.CreateDonationRequest
	if err := copier.Copy(&cmd, r); err != nil {
		return commands.CreateDonationRequest{}, err
	}
	return cmd, nil
}
