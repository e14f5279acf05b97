package engine

// Canned reply pools and templates. The texts are part of the observable
// contract; changing them breaks clients that match on them.

var greetingKeywords = []string{
	"hi", "hello", "hey", "greetings",
	"good morning", "good afternoon", "good evening",
}

var greetingReplies = []string{
	"Hi there! 👋 How can I assist you today?",
	"Hello! 😊 What can I do for you?",
	"Hey! Ready to chat and help you out.",
}

var statusReplies = []string{
	"I'm doing great, thank you! How about you?",
	"I'm here and ready to help! What's on your mind?",
	"All systems running smoothly! How can I assist?",
}

var farewellKeywords = []string{"bye", "goodbye", "see you", "farewell", "later"}

var farewellReplies = []string{
	"Goodbye! 👋 Feel free to come back anytime.",
	"See you later! Don't hesitate to chat again.",
	"Take care! I'll be here when you need me.",
}

var helpReplies = []string{
	"I can help you with calculations, jokes, time info, search, weather, and chatting naturally. Try me!",
	"Need assistance? I do math, tell jokes, provide time, weather info, search mockups, and chat smoothly.",
	"Want to chat or get info? I can calculate, joke, tell time, and more. Just ask!",
}

var jokePool = []string{
	"Why did the math book look sad? Because it had too many problems! 📚😄",
	"Why was the equal sign so humble? Because it knew it wasn't less than or greater than anything! ⚖️😄",
	"What do you call a number that can't keep still? A roamin' numeral! 🔢🏃‍♂️",
	"Why did the computer go to therapy? It had too many bytes of emotional baggage! 💻🛋️",
	"Why don't programmers like nature? It has too many bugs! 🐛",
	"How does a computer get drunk? It takes screenshots! 🍻",
	"Why do Java developers wear glasses? Because they don't C#! 👓",
	"Why did the scarecrow win an award? Because he was outstanding in his field! 🌾",
	"Why was the math lecture so long? The professor kept going off on a tangent! 📝",
	"Why did the chicken join a band? Because it had the drumsticks! 🥁",
}

type qaEntry struct {
	question string
	answers  []string
}

// Entries are checked in order so overlapping questions resolve
// deterministically.
var qaEntries = []qaEntry{
	{
		question: "what's your name",
		answers: []string{
			"I'm your friendly Conversational Agent! 😊",
			"You can call me Conversational Agent.",
		},
	},
	{
		question: "who created you",
		answers: []string{
			"I was created by a helpful developer! 👩‍💻",
			"Your developer made me to chat with you.",
		},
	},
	{
		question: "what can you do",
		answers: []string{
			"I can chat with you, tell jokes, calculate math, give time info, and more!",
			"I'm here to help you with questions, jokes, calculations, and friendly conversations.",
		},
	},
	{
		question: "how old are you",
		answers: []string{
			"I don't have an age, but I am always learning!",
			"I'm timeless 😊",
		},
	},
}

var fallbackReplies = []string{
	"I'm here to help! Could you please rephrase that?",
	"I'm not sure I understand, please try asking in a different way.",
	"Can you elaborate on that?",
	"Let's try a different question or topic!",
}

const (
	timeReplyFormat    = "The current time is %s ⏰"
	calcResultFormat   = "The result is %s."
	weatherReplyFormat = "The weather in %s is sunny with a high of 25°C and a low of 15°C."
	searchReplyFormat  = "Search results for \"%s\":\n1. Example result 1\n2. Example result 2\n3. Example result 3"

	msgUnsafeExpression = "Sorry, I can only evaluate simple math expressions."
	msgCalcFailure      = "Sorry, I couldn't calculate that."
	msgMissingCity      = "Please specify a city to get the weather info."
	msgMissingQuery     = "Please specify a search query."
	msgRepeatedInput    = "You've just said that. What else can I help you with?"
)
