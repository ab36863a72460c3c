package mailer

import "expvar"

var (
	sentTotal   = expvar.NewMap("mail_sent_total")
	failedTotal = expvar.NewMap("mail_failed_total")
)

func recordSent(transport string)    { sentTotal.Add(transport, 1) }
func recordFailure(transport string) { failedTotal.Add(transport, 1) }
