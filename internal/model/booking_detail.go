package model

import "encoding/json"

// BookingDetail is the structured view served by GET /api/bookings/{id}/detailed/.
// Labels in it are already humanized by the backend.
type BookingDetail struct {
	ID             int64  `json:"id"`
	Status         Status `json:"status"`
	ServiceDetails struct {
		ServiceType   string `json:"service_type"`
		Frequency     string `json:"frequency"`
		PreferredDate Date   `json:"preferred_date"`
	} `json:"service_details"`
	CustomerInformation struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		SMSReminders bool   `json:"sms_reminders"`
	} `json:"customer_information"`
	PropertyDetails struct {
		Address      string `json:"address"`
		Bedrooms     int    `json:"bedrooms"`
		Bathrooms    int    `json:"bathrooms"`
		Storeys      int    `json:"storeys"`
		Laundries    int    `json:"laundries"`
		Kitchen      int    `json:"kitchen"`
		LivingDining int    `json:"living_dining"`
	} `json:"property_details"`
	AdditionalInformation map[string]string `json:"additional_information"`
	AddOns                struct {
		Selected json.RawMessage `json:"selected"`
		Details  json.RawMessage `json:"details"`
	} `json:"add_ons"`
	PricingDetails json.RawMessage `json:"pricing_details"`
	Metadata       struct {
		CreatedAt string `json:"created_at"`
		UpdatedAt string `json:"updated_at"`
	} `json:"metadata"`
}
