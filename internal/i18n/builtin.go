package i18n

// builtin holds the shipped texts. Languages without an entry for a key fall
// back to English.
var builtin = map[string]map[string]string{
	KeyWelcome: {
		"English": "Welcome to Pizza Hut! 🍕 Ask for a pizza, a burger or a drink.",
		"Urdu":    "پیزا ہٹ میں خوش آمدید! 🍕 پیزا، برگر یا مشروب کے بارے میں پوچھیں۔",
		"Spanish": "¡Bienvenido a Pizza Hut! 🍕 Pide una pizza, una hamburguesa o una bebida.",
		"French":  "Bienvenue chez Pizza Hut ! 🍕 Demandez une pizza, un burger ou une boisson.",
		"Arabic":  "مرحباً بكم في بيتزا هت! 🍕 اطلب بيتزا أو برغر أو مشروباً.",
	},
	KeyCheckoutHint: {
		"English": "Please check your Cart to complete your order! 👉",
		"Urdu":    "اپنا آرڈر مکمل کرنے کے لیے براہ کرم اپنی کارٹ دیکھیں! 👉",
		"Spanish": "¡Revisa tu carrito para completar tu pedido! 👉",
		"French":  "Consultez votre panier pour finaliser votre commande ! 👉",
	},
	KeyItemFound: {
		"English": "Here is your {name} ({price} {currency}). You can add it to your cart! 👉",
		"Urdu":    "یہ رہا آپ کا {name} ({price} {currency})۔ آپ اسے اپنی کارٹ میں شامل کر سکتے ہیں! 👉",
		"Spanish": "Aquí está tu {name} ({price} {currency}). ¡Puedes añadirlo a tu carrito! 👉",
		"French":  "Voici votre {name} ({price} {currency}). Vous pouvez l'ajouter à votre panier ! 👉",
	},
	KeyMenuSummary: {
		"English": "Menu: {ranges}. What would you like?",
		"Spanish": "Menú: {ranges}. ¿Qué te gustaría?",
		"French":  "Menu : {ranges}. Que souhaitez-vous ?",
		"Urdu":    "مینو: {ranges}۔ آپ کیا لینا پسند کریں گے؟",
	},
	KeyMenuLine: {
		"English": "{category}s ({prices})",
		"Spanish": "{category} ({prices})",
		"French":  "{category} ({prices})",
		"Urdu":    "{category} ({prices})",
	},
	KeyGeneralFallback: {
		"English": "I am ready to take your order! Please ask for a pizza or burger.",
		"Urdu":    "میں آپ کا آرڈر لینے کے لیے تیار ہوں! براہ کرم پیزا یا برگر کے بارے میں پوچھیں۔",
		"Spanish": "¡Estoy listo para tomar tu pedido! Pide una pizza o una hamburguesa.",
		"French":  "Je suis prêt à prendre votre commande ! Demandez une pizza ou un burger.",
		"Arabic":  "أنا جاهز لأخذ طلبك! اطلب بيتزا أو برغر.",
	},
	KeyTrackHint: {
		"English": "To track an order, type 'track order' followed by your name or order number, for example: track order Ali.",
		"Spanish": "Para seguir un pedido, escribe 'track order' seguido de tu nombre o número de pedido, por ejemplo: track order Ali.",
		"French":  "Pour suivre une commande, tapez 'track order' suivi de votre nom ou numéro de commande, par exemple : track order Ali.",
	},
	KeyTrackFound: {
		"English": "Order #{id} for {customer} is {status}. Total: {total} {currency}. Items: {items}.",
		"Spanish": "El pedido #{id} de {customer} está {status}. Total: {total} {currency}. Artículos: {items}.",
		"French":  "La commande #{id} de {customer} est {status}. Total : {total} {currency}. Articles : {items}.",
	},
	KeyTrackNotFound: {
		"English": "Sorry, I could not find an order for \"{query}\".",
		"Spanish": "Lo siento, no encontré ningún pedido para \"{query}\".",
		"French":  "Désolé, je n'ai trouvé aucune commande pour \"{query}\".",
	},
	KeyCancelInfo: {
		"English": "To cancel an order, please contact our staff with your order number. Orders can be cancelled while they are Pending or Cooking.",
		"Spanish": "Para cancelar un pedido, contacta con nuestro personal con tu número de pedido. Se puede cancelar mientras esté Pendiente o en Cocina.",
		"French":  "Pour annuler une commande, contactez notre équipe avec votre numéro de commande. L'annulation est possible tant qu'elle est en attente ou en cuisine.",
	},
	KeyItemAdded: {
		"English": "Added {name} to cart! 🛒",
		"Urdu":    "{name} کارٹ میں شامل کر دیا گیا! 🛒",
		"Spanish": "¡{name} añadido al carrito! 🛒",
		"French":  "{name} ajouté au panier ! 🛒",
	},
	KeyNothingToAdd: {
		"English": "Ask for an item first, then add it to your cart.",
		"Spanish": "Primero pide un artículo y luego añádelo a tu carrito.",
	},
	KeyCartEmpty: {
		"English": "Your cart is empty.",
		"Urdu":    "آپ کی کارٹ خالی ہے۔",
		"Spanish": "Tu carrito está vacío.",
		"French":  "Votre panier est vide.",
	},
	KeyCartCleared: {
		"English": "Your cart has been cleared.",
		"Spanish": "Tu carrito se ha vaciado.",
		"French":  "Votre panier a été vidé.",
	},
	KeyOrderPlaced: {
		"English": "Order Placed Successfully! 🎉 Your order number is {id}.",
		"Urdu":    "آرڈر کامیابی سے دے دیا گیا! 🎉 آپ کا آرڈر نمبر {id} ہے۔",
		"Spanish": "¡Pedido realizado con éxito! 🎉 Tu número de pedido es {id}.",
		"French":  "Commande passée avec succès ! 🎉 Votre numéro de commande est {id}.",
	},
	KeyMissingFields: {
		"English": "Please fill in your Name and Address.",
		"Spanish": "Por favor, indica tu nombre y dirección.",
		"French":  "Veuillez indiquer votre nom et votre adresse.",
	},
	KeyImageCaption: {
		"English": "{name} - {price} {currency}",
	},
	KeyWaiterPrompt: {
		"English": "You are a friendly waiter at Pizza Hut.\n" +
			"Language: {language}\n" +
			"Menu: {menu}.\n" +
			"Task: Reply to the customer in {language}. Keep it short and helpful.\n\n" +
			"Customer: {input}\n" +
			"Waiter:",
	},
	KeyReceiptHeader: {
		"English": "🧾 PIZZA HUT RECEIPT",
		"Spanish": "🧾 RECIBO DE PIZZA HUT",
		"French":  "🧾 REÇU PIZZA HUT",
	},
	KeyReceiptFooter: {
		"English": "Thank you for ordering! 🍕",
		"Urdu":    "آرڈر کرنے کا شکریہ! 🍕",
		"Spanish": "¡Gracias por tu pedido! 🍕",
		"French":  "Merci pour votre commande ! 🍕",
	},
	KeyStatusPending: {
		"English": "Pending",
		"Spanish": "pendiente",
		"French":  "en attente",
	},
	KeyStatusCooking: {
		"English": "Cooking",
		"Spanish": "en preparación",
		"French":  "en cuisine",
	},
	KeyStatusDelivered: {
		"English": "Delivered",
		"Spanish": "entregado",
		"French":  "livrée",
	},
	KeyStatusCancelled: {
		"English": "Cancelled",
		"Spanish": "cancelado",
		"French":  "annulée",
	},
}
