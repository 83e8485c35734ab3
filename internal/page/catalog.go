package page

// RelatedProduct is a static carousel entry shown alongside the main
// listing.
type RelatedProduct struct {
	Title string
	Price float64
	Image string
	Badge string
}

// Specification is one row of the product characteristics table.
type Specification struct {
	Label string
	Value string
}

// Static merchandising data for the carousels. The listing itself comes
// from the backend; these rows do not.
var relatedProducts = []RelatedProduct{
	{Title: "Samsung Galaxy A55 5G Amarillo", Price: 972000, Image: "/galaxy_a55_amarillo.webp", Badge: "Envío gratis"},
	{Title: "Samsung Galaxy S24 256 GB Gris", Price: 1450000, Image: "/galaxy_s24_gris.webp", Badge: "Envío gratis"},
	{Title: "Samsung Galaxy A55 5G (Vista trasera)", Price: 972000, Image: "/hero_4.webp", Badge: "Envío gratis"},
	{Title: "Samsung Galaxy A55 5G (Detalle cámara)", Price: 972000, Image: "/hero_5.webp", Badge: "Envío gratis"},
}

var alsoBought = []RelatedProduct{
	{Title: "Samsung Galaxy A55 5G Azul", Price: 972000, Image: "/hero_1.webp"},
	{Title: "Samsung Galaxy A55 5G Amarillo", Price: 972000, Image: "/galaxy_a55_amarillo.webp"},
	{Title: "Samsung Galaxy S24 256 GB Gris", Price: 1450000, Image: "/galaxy_s24_gris.webp"},
	{Title: "Tecno Spark 20 Pro+", Price: 485000, Image: "/tecno.webp"},
	{Title: "Samsung Galaxy A55 5G (Vista lateral)", Price: 972000, Image: "/hero_3.webp"},
	{Title: "Samsung Galaxy A55 5G (Vista trasera)", Price: 972000, Image: "/hero_4.webp"},
	{Title: "Samsung Galaxy A55 5G (Detalle cámara)", Price: 972000, Image: "/hero_5.webp"},
}

var specifications = []Specification{
	{Label: "Memoria RAM", Value: "8 GB"},
	{Label: "Almacenamiento interno", Value: "256 GB"},
	{Label: "Cámara principal", Value: "50 MP"},
	{Label: "Cámara frontal", Value: "32 MP"},
	{Label: "Batería", Value: "5000 mAh"},
	{Label: "Procesador", Value: "Exynos 1480 Octa-Core"},
	{Label: "Pantalla", Value: "6.6\" Super AMOLED 120 Hz"},
	{Label: "Protección", Value: "IP67 (agua y polvo)"},
}
