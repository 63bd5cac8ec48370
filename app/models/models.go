package models

// Model dibungkus supaya urutan AutoMigrate gampang diatur dari satu tempat.
type Model struct {
	Model interface{}
}

func RegisterModels() []Model {
	return []Model{
		{Model: User{}},
		{Model: Catalog{}},
		{Model: CatalogFeature{}},
		{Model: Service{}},
		{Model: Portfolio{}},
		{Model: TeamMember{}},
		{Model: Bank{}},
		{Model: VirtualAccount{}},
		{Model: Order{}},
		{Model: OrderFeature{}},
		{Model: Review{}},
		{Model: Payment{}},
		{Model: BankMutation{}},
	}
}
