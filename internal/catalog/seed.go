package catalog

import (
	"strconv"

	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	name, description     string
	price, originalPrice  string
	rating                float64
	reviews, sold         int
	category, subcategory string
	image, store          string
	published             bool
}

var seedProducts = []seedProduct{
	{"Wireless Noise-Cancelling Headphones", "Over-ear headphones with 40 hour battery life and adaptive noise cancelling.", "89.99", "149.99", 4.7, 1243, 5120, "Consumer Electronics", "Headphones", "headphones", "Gadget Hub", true},
	{"Smart Fitness Watch", "Heart rate, sleep and SpO2 tracking with a bright AMOLED display.", "39.50", "79.00", 4.4, 860, 3400, "Consumer Electronics", "Smart Watches", "smart-watch", "Gadget Hub", true},
	{"Floral Summer Midi Dress", "Lightweight chiffon dress with a flattering wrap silhouette.", "24.99", "", 4.6, 412, 1890, "Women's Fashion", "Dresses", "summer-dress", "Bloom Boutique", true},
	{"Men's Denim Trucker Jacket", "Classic washed denim jacket with button-flap chest pockets.", "45.00", "60.00", 4.5, 301, 980, "Men's Fashion", "Jackets", "denim-jacket", "Urban Thread", true},
	{"Mechanical Gaming Keyboard", "Hot-swappable RGB keyboard with tactile brown switches.", "59.99", "", 4.8, 2210, 7600, "Computer, Office & Security", "Keyboards & Mice", "keyboard", "The Seller's Store", true},
	{"1TB Portable SSD", "USB-C external drive with read speeds up to 1050MB/s.", "74.99", "119.99", 4.7, 1502, 4300, "Computer, Office & Security", "Storage", "portable-ssd", "The Seller's Store", true},
	{"5G Android Smartphone", "6.5 inch 120Hz display, 128GB storage and a 50MP camera.", "219.00", "279.00", 4.3, 640, 1500, "Phones & Telecommunications", "Mobile Phones", "smartphone", "Gadget Hub", true},
	{"Braided USB-C Charging Cable (2-pack)", "Durable 2m nylon cables with 60W fast charging support.", "7.99", "", 4.6, 5320, 21000, "Phones & Telecommunications", "Phone Accessories", "usb-cable", "Gadget Hub", true},
	{"Minimalist Quartz Watch", "Slim stainless steel case with a genuine leather strap.", "32.00", "", 4.2, 220, 640, "Jewelry & Watches", "Watches", "quartz-watch", "Timeless Co", true},
	{"Non-Stick Cookware Set", "10-piece granite-coated set, induction compatible.", "89.00", "129.00", 4.5, 780, 2100, "Home, Pet & Appliances", "Kitchen", "cookware", "HomeNest", true},
	{"Orthopedic Pet Bed", "Memory foam bed with a removable washable cover.", "29.99", "", 4.7, 950, 3100, "Home, Pet & Appliances", "Pet Supplies", "pet-bed", "HomeNest", true},
	{"Everyday Running Sneakers", "Breathable knit upper with a cushioned foam midsole.", "42.00", "", 4.4, 530, 1700, "Bags & Shoes", "Sneakers", "sneakers", "Stride Supply", true},
	{"Waterproof Hiking Backpack 40L", "Padded laptop sleeve, rain cover and hip belt.", "35.99", "55.00", 4.6, 410, 1200, "Bags & Shoes", "Backpacks", "backpack", "Stride Supply", true},
	{"Magnetic Building Tiles (100 pcs)", "STEM construction set for ages 3 and up.", "27.49", "", 4.8, 1320, 4800, "Toys, Kids & Babies", "Building Toys", "building-tiles", "Little Wonders", true},
	{"Ultralight Camping Tent", "Two-person tent that packs down to 1.6kg.", "64.99", "", 4.3, 190, 560, "Outdoor Fun & Sports", "Camping", "tent", "Trailhead Gear", true},
	{"Vitamin C Brightening Serum", "20% vitamin C with hyaluronic acid, 30ml.", "12.99", "19.99", 4.5, 2780, 9900, "Beauty, Health & Hair", "Skin Care", "serum", "Glow Lab", true},
	{"Dash Cam 4K", "Front and rear recording with night vision and parking mode.", "54.00", "", 4.2, 340, 900, "Automobiles & Motorcycles", "Car Electronics", "dash-cam", "Gadget Hub", true},
	{"Smart LED Bulb (4-pack)", "Wi-Fi bulbs with 16 million colours and voice control.", "22.99", "34.99", 4.6, 1610, 6200, "Home Improvement & Lighting", "Smart Lighting", "smart-bulb", "HomeNest", true},
	{"Cordless Drill Driver Kit", "20V brushless drill with two batteries and 30 bits.", "69.99", "99.99", 4.7, 870, 2500, "Tools & Industrial", "Power Tools", "drill", "ProTool Depot", true},
	{"Precision Screwdriver Set", "64-in-1 magnetic set for electronics repair.", "14.99", "", 4.8, 2990, 11000, "Tools & Industrial", "Hand Tools", "screwdriver-set", "ProTool Depot", false},
	{"Linen Blend Shirt", "Relaxed fit shirt for warm weather.", "21.00", "", 4.1, 95, 210, "Men's Fashion", "Shirts", "linen-shirt", "Urban Thread", false},
}

// SeedProducts returns the built-in catalog in display order. IDs are "1".."N".
func SeedProducts() []models.Product {
	out := make([]models.Product, 0, len(seedProducts))
	for i, seed := range seedProducts {
		product := models.Product{
			ID:          strconv.Itoa(i + 1),
			Name:        seed.name,
			Description: seed.description,
			Price:       decimal.RequireFromString(seed.price),
			Rating:      seed.rating,
			Reviews:     seed.reviews,
			Sold:        seed.sold,
			Category:    seed.category,
			ImageURL:    "https://picsum.photos/seed/" + seed.image + "/600/600",
			StoreName:   seed.store,
			Published:   seed.published,
			Position:    i,
		}
		if seed.originalPrice != "" {
			orig := decimal.RequireFromString(seed.originalPrice)
			product.OriginalPrice = &orig
		}
		if seed.subcategory != "" {
			sub := seed.subcategory
			product.Subcategory = &sub
		}
		out = append(out, product)
	}
	return out
}
