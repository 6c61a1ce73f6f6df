package main

// Fixed DOM map of the booking portal. The ASP.NET control IDs are stable
// across sessions, so they live here rather than in config defaults.
const (
	urlLogin = "https://servizi.custorino.it/loginareariservata.aspx"

	selUsername = "#UC_Login_TXTUser"
	selPassword = "#UC_Login_TXTPwd"
	selLoginBtn = "#UC_Login_BTNLogin1"

	// Visible only after a successful login; doubles as the login marker.
	selNavPrenotazioni = "#BoxHeader_HyperLink3"

	// Opens the Free Fitness sub-application in a new tab.
	selFreeFitness = "#UC_ElencoPrenotazioni_HLFreeFitness"

	selCalendar = "#UC_FreeFitness_Calendar1"
	selConfirm  = "#UC_FreeFitness_LBConferma"
)

// artifactPath is where the post-confirm screenshot lands, overwritten on
// each run.
const artifactPath = "booking_result.png"
