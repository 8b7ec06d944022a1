package handler

// User-facing reply texts
const (
	welcomeText = "Welcome! Please set your city using /setcity command."

	helpText = "/start - Initializes the bot and welcomes you.\n" +
		"/setcity - Set your city for daily weather updates (then provide the city name).\n" +
		"/weather [city name] - Get the 24-hour weather forecast for any city (or provide the city name after the command).\n" +
		"/changecity [city name] - Change your default city for daily updates.\n" +
		"/settime - Set the time for daily weather updates (then provide the time in HH:MM format).\n" +
		"/help - Show this help message."

	askCityText        = "Please provide the city name for daily weather updates:"
	askWeatherCityText = "Please provide the city name to get the weather. You can type it after this command:"
	askTimeText        = "Please provide the time in HH:MM format (24-hour) for daily weather updates:"

	invalidCityText = "Please provide a valid city name."
	invalidTimeText = "Invalid time format. Please provide time in HH:MM format."
	limitText       = "You have reached the limit of 3 time changes per day."

	genericErrorText = "Something went wrong. Please try again later."
)
