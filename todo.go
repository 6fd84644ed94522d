/*
Project: Grace Marks - grace-mark rules & their assignment to exam events
*/
package gracemarks

/*
TODO: persist rules & applications (postgres); the in-memory store is lost on restart
TODO: admin auth on the API (rule creation & committing assignments)
TODO: expose rule_id validation errors with the unknown id in the message

------------------------------------ Version X ----------------------------------------
FIXME:Edge-case:
- from_date after to_date is accepted as is. Reject it ?? (needs a product decision)
- SubjectLimit.Limit & PaperPolicy marks are stored without any range check
- an abandoned session can't be recovered; keep the last N abandoned drafts ??

TODO: apply rules
	- compute grace marks per student from marks_awarded (pass vs supplementary paper)
	- enforce subject_limit per student
	- only within [from_date, to_date]
*/
