package handlers

import (
	"bytes"
	"html/template"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/afiqzx/botrelay-backend/internal/storage"
)

var statusPageTmpl = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html lang="ms">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Bot Status Control</title>
    <style>
        body { font-family: Arial, sans-serif; display: flex; justify-content: center; align-items: center; min-height: 100vh; background-color: #f4f4f4; margin: 0; }
        .container { background-color: #fff; padding: 30px; border-radius: 8px; box-shadow: 0 0 10px rgba(0,0,0,0.1); text-align: center; }
        h1 { color: #333; margin-bottom: 20px; }
        p { font-size: 1.1em; color: #555; margin-bottom: 30px; }
        .status-indicator {
            font-size: 1.5em;
            font-weight: bold;
            color: {{.IndicatorColor}};
            margin-bottom: 20px;
        }
        button {
            background-color: {{.ButtonColor}};
            color: white;
            padding: 12px 25px;
            border: none;
            border-radius: 5px;
            cursor: pointer;
            font-size: 1.1em;
            transition: background-color 0.3s ease;
        }
        button:hover {
            opacity: 0.9;
        }
        .message {
            margin-top: 20px;
            padding: 10px;
            border-radius: 5px;
            background-color: #e0f7fa;
            color: #00796b;
            border: 1px solid #b2ebf2;
            display: {{.MessageDisplay}};
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Kawalan Status Bot WhatsApp</h1>
        <p>Status semasa: <span class="status-indicator">{{.StatusText}}</span></p>

        <form method="POST">
            <button type="submit" name="toggle" value="{{.ToggleValue}}">{{.ButtonText}}</button>
        </form>

        <div class="message">{{.Message}}</div>
    </div>
</body>
</html>
`))

type statusPageData struct {
	StatusText     string
	ButtonText     string
	ButtonColor    string
	IndicatorColor string
	ToggleValue    string
	Message        string
	MessageDisplay string
}

// StatusHandler serves the bot on/off admin page
type StatusHandler struct {
	store storage.Store
}

// NewStatusHandler creates a new status page handler
func NewStatusHandler(store storage.Store) *StatusHandler {
	return &StatusHandler{store: store}
}

// HandleStatusPage renders the current bot status
func (h *StatusHandler) HandleStatusPage(c *fiber.Ctx) error {
	botIsOn, message := h.readStatus()
	return h.renderStatusPage(c, fiber.StatusOK, botIsOn, message)
}

// HandleStatusToggle flips the stored flag from the page's form and
// re-renders. A store failure on a toggle attempt is the one path that
// returns a 500.
func (h *StatusHandler) HandleStatusToggle(c *fiber.Ctx) error {
	botIsOn, message := h.readStatus()

	newStatus := botIsOn
	switch c.FormValue("toggle") {
	case "on":
		newStatus = true
	case "off":
		newStatus = false
	}

	if newStatus != botIsOn {
		if err := h.store.SetBotStatus(newStatus); err != nil {
			log.Printf("Failed to toggle bot status: %v", err)
			return h.renderStatusPage(c, fiber.StatusInternalServerError, botIsOn,
				"Ralat menukar status bot: "+err.Error())
		}
		botIsOn = newStatus
		message = "Bot berjaya ditukar ke status: " + onOff(botIsOn) + "."
		log.Printf("Bot status successfully toggled to %s", onOff(botIsOn))
	} else {
		message = "Bot sudah berada dalam status " + onOff(botIsOn) + "."
	}

	return h.renderStatusPage(c, fiber.StatusOK, botIsOn, message)
}

// readStatus reads the flag fail-open: a store error reports ON plus a
// warning message on the page.
func (h *StatusHandler) readStatus() (bool, string) {
	botIsOn, err := h.store.GetBotStatus()
	if err != nil {
		log.Printf("Failed to read bot status for status page: %v. Assuming bot is ON.", err)
		return true, "Ralat membaca status bot. Menganggap bot ON."
	}
	return botIsOn, ""
}

func (h *StatusHandler) renderStatusPage(c *fiber.Ctx, code int, botIsOn bool, message string) error {
	data := statusPageData{
		StatusText:     onOff(botIsOn),
		Message:        message,
		MessageDisplay: "none",
	}
	if botIsOn {
		data.ButtonText = "Turn Bot OFF"
		data.ButtonColor = "#dc3545"
		data.IndicatorColor = "#28a745"
		data.ToggleValue = "off"
	} else {
		data.ButtonText = "Turn Bot ON"
		data.ButtonColor = "#28a745"
		data.IndicatorColor = "#dc3545"
		data.ToggleValue = "on"
	}
	if message != "" {
		data.MessageDisplay = "block"
	}

	var buf bytes.Buffer
	if err := statusPageTmpl.Execute(&buf, data); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(code).Send(buf.Bytes())
}

func onOff(isOn bool) string {
	if isOn {
		return "ON"
	}
	return "OFF"
}
