// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

// defaultLabels is the built-in hospital-domain label set. Order matters:
// earlier labels win trigger-count ties.
func defaultLabels() []Label {
	return []Label{
		{Name: "appointment", Triggers: []string{
			"appointment", "book", "schedule", "visit", "consultation", "see doctor",
		}},
		{Name: "pricing", Triggers: []string{
			"price", "cost", "how much", "expensive", "fee", "charge", "bill",
		}},
		{Name: "hospital_info", Triggers: []string{
			"hours", "visiting", "location", "address", "directions", "parking",
		}},
		{Name: "emergency", Triggers: []string{
			"emergency", "urgent", "ambulance", "911", "critical", "accident",
		}},
		{Name: "departments", Triggers: []string{
			"department", "specialist", "doctor", "cardiology", "neurology", "oncology",
		}},
		{Name: "insurance", Triggers: []string{
			"insurance", "cover", "nhif", "payment", "billing", "claim",
		}},
		{Name: "medical_records", Triggers: []string{
			"records", "results", "report", "test", "x-ray", "lab",
		}},
		{Name: "symptoms", Triggers: []string{
			"pain", "fever", "headache", "chest", "stomach", "symptoms",
		}},
		{Name: "pharmacy", Triggers: []string{
			"medicine", "prescription", "drug", "pharmacy", "medication",
		}},
		{Name: General, Triggers: []string{
			"hello", "hi", "greetings", "thank you", "bye", "goodbye", "help",
		}},
	}
}

// defaultGeneralVariants holds the greeting, gratitude, and farewell
// responses used for the general label before falling back to its default
// guidance text. Order matters: the first variant with a matching word wins.
func defaultGeneralVariants() []variant {
	return []variant{
		{
			words: []string{"hello", "hi", "hey", "greetings", "good morning", "good afternoon", "good evening"},
			tpl: Template{
				Text:       "Hello! Welcome to the Hospital AI Agent. I'm here to help you with medical information about Nairobi Hospital and Kenyatta National Hospital. How can I assist you today?",
				Confidence: 0.9,
			},
		},
		{
			words: []string{"thank", "thanks", "appreciate"},
			tpl: Template{
				Text:       "You're very welcome! I'm glad I could help with your medical information needs. If you have other health-related questions, please don't hesitate to ask.",
				Confidence: 0.9,
			},
		},
		{
			words: []string{"bye", "goodbye", "farewell", "see you"},
			tpl: Template{
				Text:       "Thank you for using our Hospital AI Agent! Stay healthy and feel free to contact us anytime for medical information assistance.",
				Confidence: 0.9,
			},
		},
	}
}

// defaultTemplates holds the canned per-intent responses with their fixed
// confidences.
func defaultTemplates() map[string]Template {
	return map[string]Template{
		"appointment": {
			Text:       "To book an appointment: Nairobi Hospital: +254-20-2845000 or online portal. Kenyatta National Hospital: +254-20-2726300. For specialists, please book 2-3 days in advance. Emergency services available 24/7.",
			Confidence: 0.8,
		},
		"pricing": {
			Text:       "Medical service pricing varies by procedure and hospital. General ranges: CT scan 8,000-25,000 KSh, Normal delivery 25,000-120,000 KSh, C-section 60,000-200,000 KSh. Insurance coverage available. Contact billing for specific procedures.",
			Confidence: 0.7,
			Augment:    "For specific pricing information, please contact the billing department for a detailed quote.",
		},
		"hospital_info": {
			Text:       "Hospital Information: Visiting hours vary by department. General wards: 2PM-4PM & 6PM-8PM daily. ICU: 3PM-4PM only. Both hospitals have 24/7 emergency services, pharmacies, and parking facilities.",
			Confidence: 0.8,
		},
		"emergency": {
			Text:       "EMERGENCY CONTACTS: Nairobi Hospital: +254-20-2845000 | Kenyatta National: +254-20-2726300 | Both hospitals operate 24/7 emergency services. For life-threatening situations, call immediately.",
			Confidence: 0.9,
		},
		"departments": {
			Text:       "Available departments: Cardiology, Neurology, Oncology, Pediatrics, Orthopedics, Radiology, Emergency Medicine, Maternity, Surgery, Internal Medicine, Psychiatry, Dermatology, and more. Specialist appointments available.",
			Confidence: 0.8,
		},
		"insurance": {
			Text:       "Insurance accepted: NHIF, AAR, CIC, Jubilee, Resolution, Madison, APA. Both hospitals offer direct billing for approved insurance. Please check with billing department for specific coverage details.",
			Confidence: 0.8,
			Augment:    "Please confirm coverage for your specific plan with the billing department before your visit.",
		},
		"medical_records": {
			Text:       "Medical Records: Nairobi Hospital - online portal or Medical Records dept. Kenyatta National - apply at Records office with ID. Digital records available for recent patients. Lab results available online.",
			Confidence: 0.8,
		},
		"symptoms": {
			Text:       "For medical symptoms, please consult with a healthcare professional. Both hospitals offer emergency services 24/7. For non-emergency consultations, book an appointment with the appropriate specialist department.",
			Confidence: 0.7,
			Augment:    "If symptoms are severe or worsening, please seek emergency care immediately.",
		},
		"pharmacy": {
			Text:       "Pharmacy services: Both hospitals have 24/7 pharmacies with prescription medications and over-the-counter drugs. Nairobi Hospital offers home delivery service. Bring valid prescription for medications.",
			Confidence: 0.8,
		},
		General: {
			Text:       "I'm here to help with medical information about Nairobi Hospital and Kenyatta National Hospital. You can ask about appointments, services, pricing, departments, or emergency contacts.",
			Confidence: 0.6,
		},
	}
}
