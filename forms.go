package trialpack

import (
	"github.com/mbellard/trialpack/internal/docbuild"
)

// icmjeCriteria are the four ICMJE authorship criteria printed on the
// contribution form.
var icmjeCriteria = []string{
	"Substantial contributions to the conception or design of the work; or the acquisition, analysis, or interpretation of data for the work; AND",
	"Drafting the work or revising it critically for important intellectual content; AND",
	"Final approval of the version to be published; AND",
	"Agreement to be accountable for all aspects of the work in ensuring that questions related to the accuracy or integrity of any part of the work are appropriately investigated and resolved.",
}

var contributionCategories = []string{
	"Conception or design",
	"Acquisition of data",
	"Analysis or interpretation of data",
	"Drafting the manuscript",
	"Critical revision of the manuscript",
	"Statistical analysis",
	"Obtaining funding",
	"Administrative or technical support",
	"Supervision",
}

var disclosureSections = []string{
	"1. Financial relationships with industry",
	"2. Academic or institutional affiliations",
	"3. Research support or funding",
	"4. Intellectual property rights",
	"5. Personal relationships",
	"6. Other potential conflicts of interest",
}

const copyrightAgreementText = "The undersigned authors hereby transfer, assign, or otherwise convey all copyright " +
	"ownership, including any and all rights incidental thereto, exclusively to the publisher, " +
	"in the event that such work is published in the journal. " +
	"This agreement is binding on the authors, their heirs, and the publisher.\n\n" +
	"The authors represent and warrant that:\n" +
	"1. The manuscript is original, has not been previously published, and is not under consideration " +
	"for publication elsewhere.\n" +
	"2. They are the sole authors and owners of the manuscript and have full authority to enter into " +
	"this agreement.\n" +
	"3. The manuscript does not infringe upon any copyright, proprietary right, or any other right " +
	"of any third party.\n" +
	"4. The manuscript contains no material that is defamatory, violates any right of privacy, or is " +
	"otherwise contrary to law.\n" +
	"5. They have made a significant scientific contribution to the study and approved the final version.\n" +
	"6. If the manuscript was prepared jointly with other authors, they have informed the co-author(s) " +
	"of the terms of this agreement and are signing on their behalf.\n\n" +
	"The authors understand that if the manuscript is accepted for publication, they will be required to " +
	"pay the publication fees as determined by the journal."

const signatureLine = "Signature: __________________________________ Date: _______________"

// ContributionForm builds the authorship contribution form for one author.
func (s *Service) ContributionForm(author Author, meta SubmissionMeta) (*docbuild.Document, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	doc := docbuild.New()
	formHeader(doc, "AUTHOR CONTRIBUTION FORM", author, meta)

	p := doc.AddParagraph().SpaceBefore(12).SpaceAfter(12)
	bodyRun(p, "The International Committee of Medical Journal Editors (ICMJE) recommends that authorship be based on the following 4 criteria:")

	for _, criterion := range icmjeCriteria {
		p := doc.AddParagraph().LeftIndent(0.5).SpaceAfter(6)
		bodyRun(p, criterion)
	}

	p = doc.AddParagraph().SpaceBefore(12).SpaceAfter(12)
	bodyRun(p, "Please check the appropriate boxes below and sign at the bottom.").Italic()

	for _, category := range contributionCategories {
		p := doc.AddParagraph().LeftIndent(0.5).SpaceAfter(6)
		bodyRun(p, "□ "+category)
	}

	addSignatureLine(doc)
	s.log.Info("built contribution form", "author", author.LastName())
	return doc, nil
}

// DisclosureForm builds the conflict-of-interest disclosure form for one
// author.
func (s *Service) DisclosureForm(author Author, meta SubmissionMeta) (*docbuild.Document, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}

	doc := docbuild.New()
	formHeader(doc, "CONFLICT OF INTEREST DISCLOSURE FORM", author, meta)

	for _, section := range disclosureSections {
		p := doc.AddParagraph().SpaceBefore(12).SpaceAfter(6)
		bodyRun(p, section)

		p = doc.AddParagraph().LeftIndent(0.5).SpaceAfter(12)
		bodyRun(p, "□ No\n□ Yes (explain below)")

		p = doc.AddParagraph().LeftIndent(0.5).SpaceAfter(12)
		bodyRun(p, "If yes, please explain: _____________________________________________")
	}

	addSignatureLine(doc)
	s.log.Info("built disclosure form", "author", author.LastName())
	return doc, nil
}

// CopyrightAgreement builds the copyright transfer agreement signed by
// every author, one signature block per page.
func (s *Service) CopyrightAgreement(authors []Author, meta SubmissionMeta) (*docbuild.Document, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		return nil, ErrNoAuthors
	}

	doc := docbuild.New()

	title := doc.AddParagraph().Align(docbuild.AlignCenter)
	title.AddRun("COPYRIGHT TRANSFER AGREEMENT").Font(BodyFont).Size(14).Bold()

	p := doc.AddParagraph().Align(docbuild.AlignCenter)
	bodyRun(p, "Manuscript Title: "+meta.Title+"\nManuscript ID: "+meta.ManuscriptID)

	p = doc.AddParagraph().SpaceBefore(12).SpaceAfter(12).DoubleSpaced()
	bodyRun(p, copyrightAgreementText)

	for i, author := range authors {
		p := doc.AddParagraph().SpaceBefore(12).SpaceAfter(6)
		bodyRun(p, "Author Name: "+author.Name+"\nAffiliation: "+author.Affiliation+"\nEmail: "+author.Email)

		addSignatureLine(doc)

		if i < len(authors)-1 {
			doc.AddPageBreak()
		}
	}

	s.log.Info("built copyright agreement", "authors", len(authors))
	return doc, nil
}

// formHeader writes the centered form title, manuscript details, and
// author details shared by the per-author forms.
func formHeader(doc *docbuild.Document, title string, author Author, meta SubmissionMeta) {
	p := doc.AddParagraph().Align(docbuild.AlignCenter)
	p.AddRun(title).Font(BodyFont).Size(14).Bold()

	p = doc.AddParagraph().Align(docbuild.AlignCenter)
	bodyRun(p, "Manuscript Title: "+meta.Title+"\nManuscript ID: "+meta.ManuscriptID)

	p = doc.AddParagraph().Align(docbuild.AlignCenter)
	bodyRun(p, "Author: "+author.Name+"\nAffiliation: "+author.Affiliation+"\nEmail: "+author.Email)
}

func addSignatureLine(doc *docbuild.Document) {
	p := doc.AddParagraph().SpaceBefore(24).SpaceAfter(12)
	bodyRun(p, signatureLine)
}
