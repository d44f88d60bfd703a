package domain

// ProductCategory groups billable services.
type ProductCategory string

const (
	ProductConsultation ProductCategory = "consultation"
	ProductAppointment  ProductCategory = "appointment"
	ProductMedicine     ProductCategory = "medicine"
	ProductService      ProductCategory = "service"
)

// Product is a billable healthcare service.
type Product struct {
	ID           string
	Name         string
	Description  string
	PriceInCents int64
	Category     ProductCategory
}

// Products is the static price list offered at checkout.
var Products = []Product{
	{ID: "general-consultation", Name: "General Consultation", Description: "General medical consultation with a doctor", PriceInCents: 5000, Category: ProductConsultation},
	{ID: "specialist-consultation", Name: "Specialist Consultation", Description: "Consultation with a specialist doctor", PriceInCents: 10000, Category: ProductConsultation},
	{ID: "emergency-appointment", Name: "Emergency Appointment", Description: "Urgent medical appointment", PriceInCents: 15000, Category: ProductAppointment},
	{ID: "follow-up-visit", Name: "Follow-up Visit", Description: "Follow-up consultation visit", PriceInCents: 3000, Category: ProductAppointment},
	{ID: "health-checkup", Name: "Complete Health Checkup", Description: "Comprehensive health screening package", PriceInCents: 20000, Category: ProductService},
}
