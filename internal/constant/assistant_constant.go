package constant

// User-facing messages stay in French, the platform's working language.
const (
	// MsgStreamFailure is emitted as a single error event when a stream
	// breaks mid-answer.
	MsgStreamFailure = "Erreur lors du traitement"

	// MsgPipelineFailure is emitted when the pipeline itself fails before
	// or outside streaming.
	MsgPipelineFailure = "Erreur de traitement"

	// MsgUnknownAnswer is the sentence the platform handler instructs the
	// backend to emit verbatim when the document does not cover the
	// question.
	MsgUnknownAnswer = "Je n'ai pas d'information concernant ce point dans la présentation actuelle."
)

// DefaultPlatformDescription seeds the platform handler when no document
// file is configured. Deployments override it with a site_info document.
const DefaultPlatformDescription = `ADV est une plateforme de shopping en ligne. Elle propose un catalogue de produits, le suivi de commandes, un support technique pour le site et l'application, ainsi qu'un programme de nouveautés mis à jour régulièrement.`
