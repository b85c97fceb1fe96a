// internal/domain/checkout/form.go
package checkout

// PaymentMethod is how the customer pays
type PaymentMethod string

const (
	PaymentOnDelivery PaymentMethod = "payment-delivery"
	PaymentOnline     PaymentMethod = "payment-online"
)

// DeliveryMethod is a store pickup point or a courier zone
type DeliveryMethod string

const (
	DeliveryStoreCity       DeliveryMethod = "store-city"
	DeliveryStoreContinent  DeliveryMethod = "store-continent"
	DeliveryStoreTextile    DeliveryMethod = "store-textile"
	DeliveryStoreDonetsk    DeliveryMethod = "store-donetsk"
	DeliveryStoreMakeevka   DeliveryMethod = "store-makeevka"
	DeliveryStoreGorlovka   DeliveryMethod = "store-gorlovka"
	DeliveryStoreEnakievo   DeliveryMethod = "store-enakievo"
	DeliveryStoreSnezhnoe   DeliveryMethod = "store-snezhnoe"
	DeliveryCourierDonetsk  DeliveryMethod = "courier-donetsk"
	DeliveryCourierMakeevka DeliveryMethod = "courier-makeevka"
	DeliveryCourierOther    DeliveryMethod = "courier-other"
	DeliveryCourierCentral  DeliveryMethod = "courier-central"
)

// Option is a selectable method with its display label
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var paymentOptions = []Option{
	{ID: string(PaymentOnDelivery), Label: "Pay on delivery"},
	{ID: string(PaymentOnline), Label: "Pay online"},
}

var deliveryOptions = []Option{
	{ID: string(DeliveryStoreCity), Label: "City store"},
	{ID: string(DeliveryStoreContinent), Label: "Continent store"},
	{ID: string(DeliveryStoreTextile), Label: "Textilshchik store"},
	{ID: string(DeliveryStoreDonetsk), Label: "Donskoy store"},
	{ID: string(DeliveryStoreMakeevka), Label: "Makeevka store"},
	{ID: string(DeliveryStoreGorlovka), Label: "Gorlovka store"},
	{ID: string(DeliveryStoreEnakievo), Label: "Enakievo store"},
	{ID: string(DeliveryStoreSnezhnoe), Label: "Snezhnoe store"},
	{ID: string(DeliveryCourierDonetsk), Label: "Courier delivery (Donetsk)"},
	{ID: string(DeliveryCourierMakeevka), Label: "Courier delivery (Makeevka)"},
	{ID: string(DeliveryCourierOther), Label: "Courier delivery (other city)"},
	{ID: string(DeliveryCourierCentral), Label: "Courier delivery (central warehouse)"},
}

// PaymentMethods lists the payment options in display order
func PaymentMethods() []Option {
	return append([]Option(nil), paymentOptions...)
}

// DeliveryMethods lists the delivery options in display order
func DeliveryMethods() []Option {
	return append([]Option(nil), deliveryOptions...)
}

func (m PaymentMethod) Valid() bool {
	return hasOption(paymentOptions, string(m))
}

func (m DeliveryMethod) Valid() bool {
	return hasOption(deliveryOptions, string(m))
}

// Label returns the display label, or the raw value when unknown
func (m DeliveryMethod) Label() string {
	return labelOf(deliveryOptions, string(m))
}

// Label returns the display label, or the raw value when unknown
func (m PaymentMethod) Label() string {
	return labelOf(paymentOptions, string(m))
}

func hasOption(options []Option, id string) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}

func labelOf(options []Option, id string) string {
	for _, o := range options {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

// OrderForm is the customer data entered at checkout. It is never persisted.
type OrderForm struct {
	Name           string         `json:"name" validate:"trimmedmin=3"`
	Email          string         `json:"email" validate:"required,email"`
	PhoneNumber    string         `json:"phoneNumber" validate:"required,phone"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod" validate:"required,payment_method"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod" validate:"required,delivery_method"`
}
