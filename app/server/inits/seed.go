package inits

import "library-articles/app/server/models"

func seedTechDetails() []*models.TechDetail {
	return []*models.TechDetail{
		{
			Slug:         "firebase-overview",
			Title:        "Firebase Authentication",
			SectionTitle: "Who signs the tokens",
			Content: "The browser signs in with Firebase and receives an ID token, a JWT signed with RS256.\n\n" +
				"The backend never sees a password. It checks the token signature against Google's published certificates, " +
				"then the audience, issuer and expiry claims.",
		},
		{
			Slug:         "token-verification-flow",
			Title:        "Token verification flow",
			SectionTitle: "From header to identity",
			Content: "1. The client sends `Authorization: Bearer <token>`.\n" +
				"2. The gate strips the prefix and hands the token to the verifier.\n" +
				"3. A verified token yields the caller's email and claims.\n" +
				"4. Admin routes additionally require the `admin` claim or a registered admin email.\n\n" +
				"A missing or bad token is answered with 401, a valid token without the admin role with 403.",
		},
		{
			Slug:         "request-filter",
			Title:        "The request gate",
			SectionTitle: "Public, optional, authenticated, admin",
			Content: "Every route declares a policy. Public routes never look at the header. " +
				"Optional routes attach an identity when a token is sent. " +
				"Authenticated and admin routes reject the request before any handler runs.",
		},
		{
			Slug:         "method-security",
			Title:        "Role checks",
			SectionTitle: "Admin only operations",
			Content: "Creating, editing, deleting and publishing articles is reserved to admins.\n\n" +
				"The role comes from a custom claim set on the Firebase user, or from the admin registry in the server configuration.",
		},
		{
			Slug:         "review-scores",
			Title:        "Review scores",
			SectionTitle: "POST creates, PUT updates",
			Content: "A reader scores an article once with `POST /api/review-scores`. " +
				"Posting again is a conflict; the score is changed with `PUT /api/review-scores/{id}` instead.\n\n" +
				"Scores range from 0 to 5 and the database enforces one row per reader and article.",
		},
		{
			Slug:         "edit-article",
			Title:        "Editing an article",
			SectionTitle: "Partial updates",
			Content: "Admins send only the fields they change. The header image is kept unless a new one is uploaded.",
		},
		{
			Slug:         "delete-article",
			Title:        "Deleting an article",
			SectionTitle: "Gone for good",
			Content: "Deleting an article removes it together with its review scores in a single transaction. " +
				"Unpublishing is the reversible alternative.",
		},
	}
}
